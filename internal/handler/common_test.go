package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"wellness-events/config"
	"wellness-events/internal/calendar"
	"wellness-events/internal/handler"
	"wellness-events/internal/middleware"
	"wellness-events/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var (
	InvalidJSON = `{"invalid": json}`
	adminEmail  = "admin@yogastudio.com"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *mocks.MockEventService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.LoadTestConfig()
	cfg.Auth.AdminEmails = []string{adminEmail}

	mockService := mocks.NewMockEventService(t)
	router := handler.NewRouter(handler.RouterDeps{
		Config:   cfg,
		Events:   mockService,
		Exporter: calendar.NewGenerator(calendar.DefaultOptions()),
		Limiter:  middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	})
	return router, mockService
}

// adminToken signs a token the test config accepts.
func adminToken(t *testing.T, email string) string {
	t.Helper()
	claims := middleware.Claims{
		Email: email,
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.LoadTestConfig().Auth.JWTSecret))
	require.NoError(t, err)
	return signed
}

// create JSON request body
func createJSONRequest(data interface{}) *bytes.Buffer {
	if s, ok := data.(string); ok {
		return bytes.NewBufferString(s)
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

// create HTTP request with JSON body
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	req, err := http.NewRequest(method, url, createJSONRequest(data))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func createAdminRequest(t *testing.T, method, url string, data interface{}) *http.Request {
	req := createJSONHTTPRequest(method, url, data)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, adminEmail))
	return req
}
