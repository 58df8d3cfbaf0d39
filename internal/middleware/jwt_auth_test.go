package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gourdmobile/backend/internal/models"
	"github.com/gourdmobile/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type revokedSet map[string]bool

func (s revokedSet) Revoke(_ context.Context, id string, _ time.Duration) error {
	s[id] = true
	return nil
}

func (s revokedSet) IsRevoked(_ context.Context, id string) (bool, error) {
	return s[id], nil
}

func runJWT(t *testing.T, tokens *services.TokenService, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	err := JWTAuthMiddleware(tokens)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	return c, err
}

func assertHTTPError(t *testing.T, err error, code int, msg string) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %v", err)
	assert.Equal(t, code, he.Code)
	assert.Equal(t, msg, he.Message)
}

func TestJWTAuthMiddleware_Rejects(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Hour, revokedSet{})

	tests := []struct {
		name   string
		header string
		msg    string
	}{
		{"missing header", "", "Missing Authorization header"},
		{"wrong scheme", "Basic abc", "Invalid Authorization header format"},
		{"garbage token", "Bearer abc.def.ghi", "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runJWT(t, tokens, tt.header)
			assertHTTPError(t, err, http.StatusUnauthorized, tt.msg)
		})
	}
}

func TestJWTAuthMiddleware_SetsAuthContext(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Hour, revokedSet{})
	token, err := tokens.Issue(&models.User{ID: 12, IsAdmin: true})
	require.NoError(t, err)

	c, err := runJWT(t, tokens, "Bearer "+token)
	require.NoError(t, err)

	auth, ok := GetAuthContext(c)
	require.True(t, ok)
	assert.Equal(t, models.AuthContext{UserID: 12, IsAdmin: true}, auth)
	claims, ok := GetClaims(c)
	require.True(t, ok)
	assert.Equal(t, uint(12), claims.UserID)
}

func TestJWTAuthMiddleware_RevokedToken(t *testing.T) {
	store := revokedSet{}
	tokens := services.NewTokenService("secret", time.Hour, store)
	token, err := tokens.Issue(&models.User{ID: 1})
	require.NoError(t, err)
	claims, err := tokens.Parse(context.Background(), token)
	require.NoError(t, err)
	require.NoError(t, tokens.Revoke(context.Background(), claims))

	_, err = runJWT(t, tokens, "Bearer "+token)
	assertHTTPError(t, err, http.StatusUnauthorized, "Token has been revoked")
}

func TestAdminOnly(t *testing.T) {
	e := echo.New()
	handler := AdminOnly()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	assertHTTPError(t, handler(c), http.StatusUnauthorized, "User not authenticated")

	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	SetAuthContext(c, models.AuthContext{UserID: 2})
	assertHTTPError(t, handler(c), http.StatusForbidden, "Administrator privilege required")

	rec := httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	SetAuthContext(c, models.AuthContext{UserID: 3, IsAdmin: true})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
