package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application settings.
type Config struct {
	AppPort string
	AppEnv  string

	LogLevel string

	DBDriver    string
	DatabaseDSN string

	JWTSecret          string
	JWTAccessLifetime  time.Duration
	JWTRefreshLifetime time.Duration

	RabbitMQURL   string
	RabbitMQQueue string

	SentryDSN string

	CORSOrigins   string
	AuthRateLimit int
	BodyLimit     int
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "buymeagift.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ACCESS_LIFETIME", "5m")
	v.SetDefault("JWT_REFRESH_LIFETIME", "24h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "catalog_events")
	v.SetDefault("SENTRY_DSN", "")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("AUTH_RATE_LIMIT", 20)
	v.SetDefault("BODY_LIMIT", 1024*1024)
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // a missing .env is fine

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from v and checks it.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:            v.GetString("APP_PORT"),
		AppEnv:             v.GetString("APP_ENV"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		DBDriver:           v.GetString("DB_DRIVER"),
		DatabaseDSN:        v.GetString("DATABASE_DSN"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTAccessLifetime:  v.GetDuration("JWT_ACCESS_LIFETIME"),
		JWTRefreshLifetime: v.GetDuration("JWT_REFRESH_LIFETIME"),
		RabbitMQURL:        v.GetString("RABBITMQ_URL"),
		RabbitMQQueue:      v.GetString("RABBITMQ_QUEUE"),
		SentryDSN:          v.GetString("SENTRY_DSN"),
		CORSOrigins:        v.GetString("CORS_ORIGINS"),
		AuthRateLimit:      v.GetInt("AUTH_RATE_LIMIT"),
		BodyLimit:          v.GetInt("BODY_LIMIT"),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET must be set when APP_ENV=production")
		}
		cfg.JWTSecret = "insecure-development-secret"
	}
	if cfg.JWTAccessLifetime <= 0 || cfg.JWTRefreshLifetime <= 0 {
		return nil, fmt.Errorf("JWT lifetimes must be positive (access %s, refresh %s)", cfg.JWTAccessLifetime, cfg.JWTRefreshLifetime)
	}
	switch cfg.DBDriver {
	case "sqlite", "postgres", "mysql":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}
