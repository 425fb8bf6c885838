package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediconnect-server/internal/config"
	"mediconnect-server/internal/models"
	"mediconnect-server/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiration: time.Hour,
	}
}

func testRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	private := r.Group("")
	private.Use(AuthMiddleware(cfg))
	{
		private.GET("/me", func(c *gin.Context) {
			claims, _ := CurrentUser(c)
			c.JSON(http.StatusOK, gin.H{"userId": claims.UserID, "role": claims.Role})
		})

		doctorOnly := private.Group("/doctor-area")
		doctorOnly.Use(RoleAuthMiddleware(models.RoleDoctor))
		{
			doctorOnly.GET("", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})
		}
	}

	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	r := testRouter(testConfig())

	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication required", errorBody(t, w))
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r := testRouter(testConfig())

	w := doRequest(r, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token", errorBody(t, w))
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	cfg := testConfig()
	r := testRouter(cfg)

	token, err := utils.GenerateToken("abc", "p@x.y", models.RolePatient, "P", cfg.JWTSecret, -time.Minute)
	require.NoError(t, err)

	w := doRequest(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token", errorBody(t, w))
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	cfg := testConfig()
	r := testRouter(cfg)

	token, err := utils.GenerateToken("507f1f77bcf86cd799439011", "p@x.y", models.RolePatient, "P", cfg.JWTSecret, time.Hour)
	require.NoError(t, err)

	w := doRequest(r, token)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "507f1f77bcf86cd799439011", body["userId"])
	assert.Equal(t, "patient", body["role"])
}

func TestRoleAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	r := testRouter(cfg)

	patientToken, err := utils.GenerateToken("p1", "p@x.y", models.RolePatient, "P", cfg.JWTSecret, time.Hour)
	require.NoError(t, err)
	doctorToken, err := utils.GenerateToken("d1", "d@x.y", models.RoleDoctor, "D", cfg.JWTSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/doctor-area", nil)
	req.Header.Set("Authorization", "Bearer "+patientToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied. Insufficient permissions.", errorBody(t, w))

	req = httptest.NewRequest(http.MethodGet, "/doctor-area", nil)
	req.Header.Set("Authorization", "Bearer "+doctorToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
