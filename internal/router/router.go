package router

import (
	"fmt"

	"youngmoney/config"
	"youngmoney/internal/auth"
	"youngmoney/internal/handler"
	"youngmoney/internal/middleware"
	"youngmoney/internal/repository"
	"youngmoney/internal/service"
	"youngmoney/pkg/codec"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const postbackPath = "/api/monetag/postback"

// Server is the HTTP engine plus the pieces main runs in the background.
type Server struct {
	Engine    *gin.Engine
	Limiter   *middleware.SlidingWindowLimiter
	Postbacks *service.PostbackService
	Ranking   *service.RankingService
}

func Setup(cfg *config.Config, db *gorm.DB) (*Server, error) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	cd, err := codec.New(cfg.Codec.Key, cfg.Codec.IV)
	if err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	limiter := middleware.NewSlidingWindowLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.RateLimit(limiter, postbackPath))
	r.Use(middleware.Decrypt(cd))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	spinRepo := repository.NewSpinRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	monetagRepo := repository.NewMonetagRepository(db)

	// Services
	authn := auth.NewAuthenticator(&cfg.JWT)
	var google service.GoogleVerifier
	if v := service.NewGoogleVerifier(&cfg.OAuth); v != nil {
		google = v
		log.Info().Msg("[auth] Google access-token verification enabled")
	}
	settingsSvc := service.NewSettingsService(settingRepo, withdrawalRepo)
	notifSvc := service.NewNotificationService(notificationRepo, nil)
	authSvc := service.NewAuthService(authn, userRepo, google)
	userSvc := service.NewUserService(db, userRepo)
	rewardSvc := service.NewRewardService(db, userRepo, ledgerRepo, settingsSvc, nil)
	wheelSvc := service.NewWheelService(db, userRepo, spinRepo, ledgerRepo, settingsSvc, nil)
	referralSvc := service.NewReferralService(db, userRepo, referralRepo, ledgerRepo, notifSvc, settingsSvc, nil)
	withdrawalSvc := service.NewWithdrawalService(db, userRepo, withdrawalRepo, ledgerRepo, notifSvc, settingsSvc, nil)
	postbackSvc := service.NewPostbackService(sessionRepo, monetagRepo, nil)
	rankingSvc := service.NewRankingService(userRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc, rewardSvc)
	checkinHandler := handler.NewCheckinHandler(rewardSvc)
	referralHandler := handler.NewReferralHandler(referralSvc)
	spinHandler := handler.NewSpinHandler(wheelSvc)
	withdrawalHandler := handler.NewWithdrawalHandler(withdrawalSvc)
	rankingHandler := handler.NewRankingHandler(rankingSvc, rewardSvc)
	monetagHandler := handler.NewMonetagHandler(postbackSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	notificationHandler := handler.NewNotificationHandler(notifSvc)
	healthHandler := handler.NewHealthHandler(db)

	authMw := middleware.AuthRequired(authn)

	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)

	// The Android client still calls the legacy .php paths.
	for _, suffix := range []string{"", ".php"} {
		authGroup := r.Group("/auth")
		{
			authGroup.POST("/device-login"+suffix, authHandler.DeviceLogin)
			authGroup.POST("/google-login"+suffix, authHandler.GoogleLogin)
			authGroup.POST("/email-login"+suffix, authHandler.EmailLogin)
		}
		users := r.Group("/users")
		users.Use(authMw)
		{
			users.GET("/profile"+suffix, userHandler.Profile)
			users.GET("/balance"+suffix, userHandler.Balance)
			users.PUT("/update-profile"+suffix, userHandler.UpdateProfile)
		}
	}

	api := r.Group("/api/v1")
	api.Use(authMw)
	{
		api.POST("/checkin", checkinHandler.Checkin)
		api.GET("/spin", spinHandler.Status)
		api.POST("/spin", spinHandler.Spin)
	}

	history := r.Group("/history")
	history.Use(authMw)
	{
		history.GET("/points", checkinHandler.PointsHistory)
		history.GET("/transactions", checkinHandler.Transactions)
	}

	invite := r.Group("/invite")
	invite.Use(authMw)
	{
		invite.GET("/my_code", referralHandler.MyCode)
		invite.POST("/validate", referralHandler.Validate)
	}

	withdrawals := r.Group("/withdrawals")
	withdrawals.Use(authMw)
	{
		withdrawals.POST("/request", withdrawalHandler.Request)
		withdrawals.GET("/history", withdrawalHandler.History)
		withdrawals.GET("/recent", withdrawalHandler.Recent)
	}

	ranking := r.Group("/ranking")
	{
		ranking.GET("/list", rankingHandler.List)
		ranking.GET("/user_position", authMw, rankingHandler.Position)
		ranking.POST("/add_points", authMw, rankingHandler.AddPoints)
	}

	monetag := r.Group("/api/monetag")
	{
		monetag.POST("/session", monetagHandler.Session)
		monetag.GET("/postback", monetagHandler.Postback)
		monetag.GET("/stats", monetagHandler.Stats)
		monetag.DELETE("/cleanup", monetagHandler.Cleanup)
	}

	settings := r.Group("/settings")
	{
		settings.GET("/get", settingsHandler.Get)
		settings.POST("/update", settingsHandler.Update)
		settings.GET("/quick-values", settingsHandler.QuickValues)
	}

	notifications := r.Group("/notifications")
	notifications.Use(authMw)
	{
		notifications.GET("/list", notificationHandler.List)
		notifications.POST("/mark_read", notificationHandler.MarkRead)
	}

	r.NoRoute(healthHandler.NotFound)

	return &Server{
		Engine:    r,
		Limiter:   limiter,
		Postbacks: postbackSvc,
		Ranking:   rankingSvc,
	}, nil
}
