package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	OAuth     OAuthConfig
	Codec     CodecConfig
	Scheduler SchedulerConfig
	RateLimit RateLimitConfig
	LogLevel  string
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// OAuthConfig enables Google access-token verification on google-login when GoogleClientID is set.
type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
}

// CodecConfig is the AES-CBC key/iv shared with the Android app.
type CodecConfig struct {
	Key string
	IV  string
}

type SchedulerConfig struct {
	SessionSweepInterval time.Duration
	DailyResetEnabled    bool
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Load reads .env (if present), config.yaml (if present) and the environment, in that order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Config{
		Server: ServerConfig{
			Port:         v.GetString("PORT"),
			Env:          v.GetString("APP_ENV"),
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			DSN:             v.GetString("DATABASE_DSN"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			ConnMaxLifetime: v.GetDuration("DATABASE_CONN_MAX_LIFETIME"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Expiry: v.GetDuration("JWT_EXPIRY"),
			Issuer: v.GetString("JWT_ISSUER"),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		},
		Codec: CodecConfig{
			Key: v.GetString("ENCRYPTION_KEY"),
			IV:  v.GetString("ENCRYPTION_IV"),
		},
		Scheduler: SchedulerConfig{
			SessionSweepInterval: v.GetDuration("SESSION_SWEEP_INTERVAL"),
			DailyResetEnabled:    v.GetBool("DAILY_RESET_ENABLED"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   v.GetDuration("RATE_LIMIT_WINDOW"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", 10*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 10*time.Second)

	v.SetDefault("DATABASE_DSN", "root:@tcp(localhost:3306)/youngmoney?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 10)
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", time.Hour)

	v.SetDefault("JWT_SECRET", "change-me-in-production")
	v.SetDefault("JWT_EXPIRY", 30*24*time.Hour)
	v.SetDefault("JWT_ISSUER", "youngmoney")

	v.SetDefault("ENCRYPTION_KEY", "default-key-32-characters-long!!")
	v.SetDefault("ENCRYPTION_IV", "default-iv-16ch!")

	v.SetDefault("SESSION_SWEEP_INTERVAL", time.Minute)
	v.SetDefault("DAILY_RESET_ENABLED", true)

	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", 60*time.Second)

	v.SetDefault("LOG_LEVEL", "info")
}
