package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ScoringFlat  = "flat"
	ScoringMarks = "marks"
)

type Config struct {
	DBDriver   string // postgres or sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string // database name, or file/DSN for sqlite
	DBSSLMode  string
	LogSQL     bool

	JWTSecret string
	TokenTTL  time.Duration

	ServerPort  string
	APIPrefix   string
	CORSOrigins string
	LogFormat   string

	ScoringMode   string
	AuthRateLimit int // requests per minute per IP on login/register, 0 disables

	AdminEmail    string
	AdminUsername string
	AdminPassword string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	rateLimit, err := strconv.Atoi(getEnv("AUTH_RATE_LIMIT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_LIMIT: %w", err)
	}
	logSQL, _ := strconv.ParseBool(getEnv("LOG_SQL", "false"))

	cfg := &Config{
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "quiz_master"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		LogSQL:        logSQL,
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		TokenTTL:      ttl,
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		APIPrefix:     getEnv("API_PREFIX", "/api/v1"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		ScoringMode:   strings.ToLower(getEnv("SCORING_MODE", ScoringFlat)),
		AuthRateLimit: rateLimit,
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@quizmaster.com"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	switch c.ScoringMode {
	case ScoringFlat, ScoringMarks:
	default:
		return fmt.Errorf("unknown SCORING_MODE %q", c.ScoringMode)
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
