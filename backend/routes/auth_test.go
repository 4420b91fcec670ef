package routes

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizmaster/backend/utils"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.doMap(t, "POST", "/register", "", map[string]string{
		"username":  "newuser",
		"email":     "newuser@example.com",
		"password":  "Passw0rd1",
		"full_name": "New User",
		"dob":       "1999-12-31",
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "User registered successfully", body["message"])

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "newuser", user["username"])
	assert.NotContains(t, user, "password")
}

func TestRegisterRejectsWeakPasswords(t *testing.T) {
	env := newTestEnv(t)

	for _, password := range []string{"Pa0", "Password", "12345678", "passw0rd1", "PASSW0RD1"} {
		t.Run(password, func(t *testing.T) {
			status, _ := env.doMap(t, "POST", "/register", "", map[string]string{
				"username": "weak", "email": "weak@example.com", "password": password,
			})
			assert.Equal(t, http.StatusBadRequest, status)
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.doMap(t, "POST", "/register", "", map[string]string{"email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, status)
	details := body["details"].(map[string]interface{})
	assert.Contains(t, details, "username")
	assert.Contains(t, details, "password")

	status, body = env.doMap(t, "POST", "/register", "", map[string]string{
		"username": "bad", "email": "bad-email", "password": "Passw0rd1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid email format", body["message"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.userToken(t, "first")

	status, body := env.doMap(t, "POST", "/register", "", map[string]string{
		"username": "second", "email": "first@example.com", "password": "Passw0rd1",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Email already exists", body["message"])
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	token := env.userToken(t, "loginuser")

	claims, err := utils.ParseJWTToken(token, env.cfg)
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "loginuser@example.com", claims.Email)

	adminClaims, err := utils.ParseJWTToken(env.adminToken(t), env.cfg)
	require.NoError(t, err)
	assert.Equal(t, "admin", adminClaims.Role)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	env := newTestEnv(t)
	env.userToken(t, "someone")

	wrongStatus, wrongBody := env.doMap(t, "POST", "/login", "", map[string]string{
		"email": "someone@example.com", "password": "WrongPass1",
	})
	unknownStatus, unknownBody := env.doMap(t, "POST", "/login", "", map[string]string{
		"email": "nobody@example.com", "password": "Passw0rd1",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongStatus)
	assert.Equal(t, wrongStatus, unknownStatus)
	assert.Equal(t, wrongBody, unknownBody)

	status, _ := env.doMap(t, "POST", "/login", "", map[string]string{"email": "someone@example.com"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	token := env.userToken(t, "leaver")

	status, body := env.doMap(t, "POST", "/logout", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Logged out successfully", body["message"])

	status, _ = env.doMap(t, "POST", "/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	env := newTestEnv(t)

	expired := *env.cfg
	expired.TokenTTL = -time.Minute
	token, err := utils.GenerateJWTToken(1, env.cfg.AdminEmail, "admin", &expired)
	require.NoError(t, err)

	status, body := env.doMap(t, "GET", "/subjects", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token has expired", body["message"])
}

func TestProfile(t *testing.T) {
	env := newTestEnv(t)
	token := env.userToken(t, "profiled")

	status, body := env.doMap(t, "PUT", "/profile", token, map[string]interface{}{
		"full_name":     "Pro Filed",
		"qualification": "BSc",
		"dob":           "2001-02-03",
	})
	require.Equal(t, http.StatusOK, status, body)

	status, body = env.doMap(t, "GET", "/profile", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Pro Filed", body["full_name"])
	assert.Equal(t, "2001-02-03", body["dob"])
	assert.Equal(t, "user", body["role"])

	status, _ = env.doMap(t, "PUT", "/profile", token, map[string]string{
		"old_password": "wrong", "new_password": "NewPassw0rd",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.doMap(t, "PUT", "/profile", token, map[string]string{
		"old_password": "Passw0rd1", "new_password": "NewPassw0rd",
	})
	require.Equal(t, http.StatusOK, status)
	env.login(t, "profiled@example.com", "NewPassw0rd")
}
