package middleware

import (
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizmaster/backend/config"
	"quizmaster/backend/utils"
)

type decoder struct {
	cfg *config.Config
}

func (d decoder) DecodeToken(token string) (*utils.Claims, error) {
	return utils.ParseJWTToken(token, d.cfg)
}

func newTestApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler(log.New(io.Discard, "", 0))})
	app.Use(RequestID())

	auth := AuthMiddleware(decoder{cfg: cfg})
	app.Get("/me", auth, func(c *fiber.Ctx) error {
		identity, _ := CurrentUser(c)
		return c.JSON(fiber.Map{"user_id": identity.UserID, "role": identity.Role})
	})
	app.Get("/admin", auth, AdminMiddleware(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/no-auth-admin", AdminMiddleware(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func token(t *testing.T, cfg *config.Config, role string) string {
	t.Helper()
	tok, err := utils.GenerateJWTToken(7, "u@example.com", role, cfg)
	require.NoError(t, err)
	return tok
}

func errorMessage(t *testing.T, body io.Reader) string {
	t.Helper()
	var resp utils.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp.Message
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret", TokenTTL: time.Hour}
	expiredCfg := &config.Config{JWTSecret: "testsecret", TokenTTL: -time.Hour}
	otherCfg := &config.Config{JWTSecret: "other", TokenTTL: time.Hour}
	app := newTestApp(cfg)

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"missing", "", fiber.StatusUnauthorized, "Token is missing"},
		{"no bearer", token(t, cfg, "user"), fiber.StatusUnauthorized, "Invalid authorization header"},
		{"expired", "Bearer " + token(t, expiredCfg, "user"), fiber.StatusUnauthorized, "Token has expired"},
		{"bad signature", "Bearer " + token(t, otherCfg, "user"), fiber.StatusUnauthorized, "Invalid token"},
		{"valid", "Bearer " + token(t, cfg, "user"), fiber.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))

			if tt.status != fiber.StatusOK {
				assert.Equal(t, tt.message, errorMessage(t, resp.Body))
				return
			}
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, float64(7), body["user_id"])
			assert.Equal(t, "user", body["role"])
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret", TokenTTL: time.Hour}
	app := newTestApp(cfg)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, cfg, "user"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, cfg, "admin"))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/no-auth-admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequestIDIsPreserved(t *testing.T) {
	app := newTestApp(&config.Config{JWTSecret: "testsecret", TokenTTL: time.Hour})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(HeaderRequestID))
}

func TestAuthRateLimiter(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler(log.New(io.Discard, "", 0))})
	app.Post("/login", AuthRateLimiter(2), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}
