package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "buymeagift.db", cfg.DatabaseDSN)
	assert.Equal(t, 5*time.Minute, cfg.JWTAccessLifetime)
	assert.Equal(t, 24*time.Hour, cfg.JWTRefreshLifetime)
	assert.Equal(t, "catalog_events", cfg.RabbitMQQueue)
	assert.Equal(t, 20, cfg.AuthRateLimit)
	assert.Equal(t, 1024*1024, cfg.BodyLimit)
	assert.NotEmpty(t, cfg.JWTSecret, "development gets a fallback secret")
	assert.False(t, cfg.IsProduction())
}

func TestFromViperRejects(t *testing.T) {
	tests := []struct {
		name     string
		override map[string]interface{}
		message  string
	}{
		{
			name:     "production without secret",
			override: map[string]interface{}{"APP_ENV": "production"},
			message:  "JWT_SECRET must be set",
		},
		{
			name:     "unknown driver",
			override: map[string]interface{}{"DB_DRIVER": "oracle"},
			message:  "unsupported DB_DRIVER",
		},
		{
			name:     "zero lifetime",
			override: map[string]interface{}{"JWT_ACCESS_LIFETIME": "0s"},
			message:  "JWT lifetimes must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			for k, val := range tt.override {
				v.Set(k, val)
			}
			_, err := FromViper(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_ACCESS_LIFETIME", "10m")
	t.Setenv("DB_DRIVER", "postgres")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, 10*time.Minute, cfg.JWTAccessLifetime)
	assert.Equal(t, "postgres", cfg.DBDriver)
}
