package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	jwtpkg "github.com/ringdesk/callhub/internal/pkg/jwt"
	"github.com/ringdesk/callhub/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var authTestCfg = models.JWTConfig{Secret: "test-secret", Issuer: "callhub-test", Expiration: 60}

func doAuthedRequest(t *testing.T, authorization string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := RequireAuth(authTestCfg)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, reached
}

func TestRequireAuth_MissingTokenIs401(t *testing.T) {
	rec, reached := doAuthedRequest(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)

	rec, reached = doAuthedRequest(t, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestRequireAuth_InvalidTokenIs403(t *testing.T) {
	rec, reached := doAuthedRequest(t, "Bearer not-a-token")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}

func TestRequireAuth_WrongSecretIs403(t *testing.T) {
	token, _, err := jwtpkg.GenerateToken("+14155551234", models.JWTConfig{
		Secret: "some-other-secret", Expiration: 60,
	})
	require.NoError(t, err)

	rec, reached := doAuthedRequest(t, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}

func TestRequireAuth_ValidTokenSetsContext(t *testing.T) {
	token, _, err := jwtpkg.GenerateToken("+14155551234", authTestCfg)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireAuth(authTestCfg)(func(c echo.Context) error {
		claims, ok := UserFromContext(c)
		require.True(t, ok)
		assert.Equal(t, "+14155551234", claims.PhoneNumber)
		assert.True(t, claims.Verified)
		assert.Equal(t, "+14155551234", c.Get(ContextUserIDKey))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
