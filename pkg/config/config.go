package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration, loaded from the environment with an
// optional .env file for local development.
type Config struct {
	Port         string
	IsProduction bool

	PGSQLURL    string
	DBOpTimeout time.Duration

	JWTSecret string
	JWTExpiry time.Duration
	JWTIssuer string

	AuthRateLimit string

	PosthogAPIKey string
}

// LoadConfig reads configuration from environment variables. Missing required
// values are an error; everything else has a sensible default.
func LoadConfig(logger *slog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, relying on environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("DB_OP_TIMEOUT_SECONDS", 10)
	v.SetDefault("JWT_EXPIRY_MINUTES", 60)
	v.SetDefault("JWT_ISSUER", "pennywise")
	v.SetDefault("AUTH_RATE_LIMIT", "10-M")

	cfg := &Config{
		Port:          v.GetString("PORT"),
		IsProduction:  v.GetBool("IS_PRODUCTION"),
		PGSQLURL:      v.GetString("PGSQL_URL"),
		DBOpTimeout:   time.Duration(v.GetInt("DB_OP_TIMEOUT_SECONDS")) * time.Second,
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTExpiry:     time.Duration(v.GetInt("JWT_EXPIRY_MINUTES")) * time.Minute,
		JWTIssuer:     v.GetString("JWT_ISSUER"),
		AuthRateLimit: v.GetString("AUTH_RATE_LIMIT"),
		PosthogAPIKey: v.GetString("POSTHOG_API_KEY"),
	}

	if cfg.PGSQLURL == "" {
		return nil, fmt.Errorf("PGSQL_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
