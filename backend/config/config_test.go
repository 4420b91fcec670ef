package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "topsecret")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("SCORING_MODE", "flat")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("AUTH_RATE_LIMIT", "10")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "topsecret", cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, ScoringFlat, cfg.ScoringMode)
	assert.Equal(t, 10, cfg.AuthRateLimit)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("SCORING_MODE", "MARKS")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_NAME", "quiz.db")
	t.Setenv("AUTH_RATE_LIMIT", "0")
	t.Setenv("API_PREFIX", "/api")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, ScoringMarks, cfg.ScoringMode)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "quiz.db", cfg.DBName)
	assert.Equal(t, 0, cfg.AuthRateLimit)
	assert.Equal(t, "/api", cfg.APIPrefix)
}

func TestLoadConfigRejectsBadTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL", "tomorrow")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{JWTSecret: "s", TokenTTL: time.Hour, ScoringMode: ScoringFlat, DBDriver: "postgres"}
	assert.NoError(t, base.Validate())

	noSecret := base
	noSecret.JWTSecret = ""
	assert.Error(t, noSecret.Validate())

	badMode := base
	badMode.ScoringMode = "weighted"
	assert.Error(t, badMode.Validate())

	badDriver := base
	badDriver.DBDriver = "mysql"
	assert.Error(t, badDriver.Validate())

	zeroTTL := base
	zeroTTL.TokenTTL = 0
	assert.Error(t, zeroTTL.Validate())
}
