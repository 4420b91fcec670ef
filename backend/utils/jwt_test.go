package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizmaster/backend/config"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "testsecret", TokenTTL: time.Hour}
}

func TestGenerateAndParseJWTToken(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateJWTToken(42, "user@example.com", "admin", cfg)
	require.NoError(t, err)

	claims, err := ParseJWTToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseJWTTokenExpired(t *testing.T) {
	cfg := testConfig()
	cfg.TokenTTL = -time.Minute

	token, err := GenerateJWTToken(1, "user@example.com", "user", cfg)
	require.NoError(t, err)

	_, err = ParseJWTToken(token, cfg)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseJWTTokenTampered(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateJWTToken(1, "user@example.com", "user", cfg)
	require.NoError(t, err)

	other := testConfig()
	other.JWTSecret = "othersecret"
	_, err = ParseJWTToken(token, other)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ParseJWTToken("not.a.token", cfg)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseJWTTokenRejectsNoneAlgorithm(t *testing.T) {
	cfg := testConfig()

	claims := Claims{
		UserID: 1,
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseJWTToken(token, cfg)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseJWTTokenRequiresExpiry(t *testing.T) {
	cfg := testConfig()

	claims := Claims{
		UserID: 1,
		Email:  "user@example.com",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	_, err = ParseJWTToken(token, cfg)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"lowercase scheme", "bearer abc", "abc", nil},
		{"empty", "", "", ErrTokenMissing},
		{"no scheme", "abc.def.ghi", "", ErrTokenInvalid},
		{"wrong scheme", "Basic abc", "", ErrTokenInvalid},
		{"extra parts", "Bearer a b", "", ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
