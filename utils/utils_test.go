package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleTokenRoundTrip(t *testing.T) {
	secret := []byte("s3cret")
	tok, err := GenerateRoleToken(secret, "desk-7", "operations", time.Hour)
	require.NoError(t, err)

	claims, err := ParseRoleToken(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "operations", claims.Role)
	assert.Equal(t, "desk-7", claims.Subject)
}

func TestParseRoleTokenRejects(t *testing.T) {
	secret := []byte("s3cret")
	expired, err := GenerateRoleToken(secret, "desk-7", "admin", -time.Minute)
	require.NoError(t, err)
	noRole, err := GenerateRoleToken(secret, "desk-7", "", time.Hour)
	require.NoError(t, err)
	otherKey, err := GenerateRoleToken([]byte("other"), "desk-7", "admin", time.Hour)
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, RoleClaims{Role: "admin"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret []byte
		token  string
	}{
		{"expired", secret, expired},
		{"missing role", secret, noRole},
		{"wrong key", secret, otherKey},
		{"unsigned", secret, none},
		{"garbage", secret, "not.a.token"},
		{"no secret configured", nil, expired},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRoleToken(tc.secret, tc.token)
			assert.Error(t, err)
		})
	}
}

func TestHealthMonitorWithoutDependencies(t *testing.T) {
	h := NewHealthMonitor(nil, nil)
	status := h.Check(context.Background())

	assert.Equal(t, DependencyDisabled, status.Mongo)
	assert.Equal(t, DependencyDisabled, status.Redis)
	assert.True(t, status.Healthy())
	assert.Equal(t, status, h.Status())

	assert.False(t, HealthStatus{Mongo: DependencyUp, Redis: DependencyDown}.Healthy())
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Internal Server Error", resp.Message)
}
