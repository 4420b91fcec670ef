package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"quizmaster/backend/config"
	"quizmaster/backend/repository"
	"quizmaster/backend/testutil"
	"quizmaster/backend/utils"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := testutil.Config()
	db := testutil.NewDB(t, cfg)
	require.NoError(t, repository.Migrate(db))
	require.NoError(t, repository.SeedRoles(db))

	hash, err := utils.HashPassword(cfg.AdminPassword)
	require.NoError(t, err)
	require.NoError(t, repository.SeedAdmin(db, cfg.AdminEmail, cfg.AdminUsername, hash))

	logger := testutil.Logger()
	app := fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: utils.ErrorHandler(logger),
	})
	SetupRoutes(app, db, cfg, logger)

	return &testEnv{app: app, db: db, cfg: cfg}
}

// do sends a JSON request and returns the status with the raw body.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, e.cfg.APIPrefix+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func (e *testEnv) doMap(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	status, raw := e.do(t, method, path, token, body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return status, out
}

func (e *testEnv) doList(t *testing.T, method, path, token string) (int, []map[string]interface{}) {
	t.Helper()
	status, raw := e.do(t, method, path, token, nil)
	var out []map[string]interface{}
	if status == http.StatusOK {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return status, out
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	status, body := e.doMap(t, "POST", "/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, status, body)
	token, ok := body["auth_token"].(string)
	require.True(t, ok)
	return token
}

func (e *testEnv) adminToken(t *testing.T) string {
	return e.login(t, e.cfg.AdminEmail, e.cfg.AdminPassword)
}

// userToken registers a fresh user and logs in.
func (e *testEnv) userToken(t *testing.T, name string) string {
	t.Helper()
	email := name + "@example.com"
	status, body := e.doMap(t, "POST", "/register", "", map[string]string{
		"username": name, "email": email, "password": "Passw0rd1",
	})
	require.Equal(t, http.StatusCreated, status, body)
	return e.login(t, email, "Passw0rd1")
}

// createID posts body and returns the id of the created entity under key.
func (e *testEnv) createID(t *testing.T, path, token, key string, body interface{}) uint {
	t.Helper()
	status, resp := e.doMap(t, "POST", path, token, body)
	require.Equal(t, http.StatusCreated, status, resp)
	entity, ok := resp[key].(map[string]interface{})
	require.True(t, ok, resp)
	return uint(entity["id"].(float64))
}

func idPath(prefix string, id uint) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}
