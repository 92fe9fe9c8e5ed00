package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wellness-events/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, email string, ttl time.Duration) string {
	t.Helper()
	claims := middleware.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	tok, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return tok
}

func setupAuthRouter(secret string, admins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin", middleware.RequireAdmin(secret, admins), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString(middleware.AdminEmailKey)})
	})
	return r
}

func doRequest(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAdmin(t *testing.T) {
	admins := []string{"Admin@YogaStudio.com"}

	t.Run("Success - allowlisted email, any case", func(t *testing.T) {
		r := setupAuthRouter(secret, admins)
		w := doRequest(r, "Bearer "+sign(t, jwt.SigningMethodHS256, []byte(secret), "admin@yogastudio.com", time.Hour))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "admin@yogastudio.com")
	})

	t.Run("Success - empty allowlist accepts any valid token", func(t *testing.T) {
		r := setupAuthRouter(secret, nil)
		w := doRequest(r, "Bearer "+sign(t, jwt.SigningMethodHS256, []byte(secret), "someone@example.com", time.Hour))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - missing header", func(t *testing.T) {
		w := doRequest(setupAuthRouter(secret, admins), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Missing or malformed")
	})

	t.Run("Failed - wrong scheme", func(t *testing.T) {
		w := doRequest(setupAuthRouter(secret, admins), "Basic abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Failed - wrong secret", func(t *testing.T) {
		tok := sign(t, jwt.SigningMethodHS256, []byte("other"), "admin@yogastudio.com", time.Hour)
		w := doRequest(setupAuthRouter(secret, admins), "Bearer "+tok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token")
	})

	t.Run("Failed - expired", func(t *testing.T) {
		tok := sign(t, jwt.SigningMethodHS256, []byte(secret), "admin@yogastudio.com", -time.Minute)
		w := doRequest(setupAuthRouter(secret, admins), "Bearer "+tok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token expired")
	})

	t.Run("Failed - other HMAC size rejected", func(t *testing.T) {
		tok := sign(t, jwt.SigningMethodHS512, []byte(secret), "admin@yogastudio.com", time.Hour)
		w := doRequest(setupAuthRouter(secret, admins), "Bearer "+tok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Failed - not on allowlist", func(t *testing.T) {
		tok := sign(t, jwt.SigningMethodHS256, []byte(secret), "guest@example.com", time.Hour)
		w := doRequest(setupAuthRouter(secret, admins), "Bearer "+tok)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Failed - secret not configured", func(t *testing.T) {
		tok := sign(t, jwt.SigningMethodHS256, []byte(secret), "admin@yogastudio.com", time.Hour)
		w := doRequest(setupAuthRouter("", admins), "Bearer "+tok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "not configured")
	})
}

func TestParseToken(t *testing.T) {
	tok := sign(t, jwt.SigningMethodHS256, []byte(secret), "admin@yogastudio.com", time.Hour)

	claims, err := middleware.ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "admin@yogastudio.com", claims.Email)
	assert.Equal(t, "user-1", claims.Subject)

	_, err = middleware.ParseToken("not.a.token", secret)
	assert.Error(t, err)
}
