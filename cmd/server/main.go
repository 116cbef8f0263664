package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"youngmoney/config"
	"youngmoney/internal/database"
	"youngmoney/internal/repository"
	"youngmoney/internal/router"
	"youngmoney/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Server.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	setupLogger(cfg)

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = repository.NewSettingRepository(db).SeedDefaults(seedCtx, database.DefaultSystemSettings(), database.DefaultRouletteSettings())
	seedCancel()
	if err != nil {
		log.Fatal().Err(err).Msg("seed settings")
	}

	srvParts, err := router.Setup(cfg, db)
	if err != nil {
		log.Fatal().Err(err).Msg("router")
	}

	sched, err := service.NewScheduler(srvParts.Postbacks, srvParts.Ranking, cfg.Scheduler.SessionSweepInterval, cfg.Scheduler.DailyResetEnabled)
	if err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}
	sched.Start()

	bgCtx, stopBackground := context.WithCancel(context.Background())
	go srvParts.Limiter.RunSweeper(bgCtx, cfg.RateLimit.Window)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srvParts.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("env", cfg.Server.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down...")

	stopBackground()
	if err := sched.Shutdown(); err != nil {
		log.Error().Err(err).Msg("scheduler shutdown")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
