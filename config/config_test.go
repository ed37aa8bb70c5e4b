package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Port:           "8080",
		Storage:        StorageMemory,
		JWTSecret:      "secret",
		JWTExpiration:  time.Hour,
		StreakTimezone: "UTC",
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	assert.Nil(t, cfg.Location())
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Storage = "postgres"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.StreakTimezone = "Mars/Olympus_Mons"
	assert.Error(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORAGE", "memory")
	t.Setenv("JWT_EXPIRATION", "2h")
	t.Setenv("STREAK_TIMEZONE", "Europe/Istanbul")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example;http://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiration)
	assert.True(t, cfg.MongoTransactions)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, ":8080", cfg.Addr())

	require.NotNil(t, cfg.Location())
	assert.Equal(t, "Europe/Istanbul", cfg.Location().String())
}
