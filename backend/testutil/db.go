// Package testutil opens throwaway in-memory databases for package tests.
package testutil

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"quizmaster/backend/config"
	"quizmaster/backend/utils"
)

// Config returns settings suitable for tests: sqlite in memory, no rate limit.
func Config() *config.Config {
	return &config.Config{
		DBDriver:      "sqlite",
		DBName:        "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)",
		JWTSecret:     "testsecret",
		TokenTTL:      time.Hour,
		APIPrefix:     "/api/v1",
		CORSOrigins:   "*",
		ScoringMode:   config.ScoringFlat,
		AuthRateLimit: 0,
		AdminEmail:    "admin@quizmaster.com",
		AdminUsername: "admin",
		AdminPassword: "admin123",
	}
}

// Logger discards output.
func Logger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// NewDB opens an empty database for cfg and closes it when the test ends.
func NewDB(t testing.TB, cfg *config.Config) *gorm.DB {
	t.Helper()

	db, err := utils.InitDB(cfg, Logger())
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
