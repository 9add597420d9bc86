package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-jwt-secret")

func signToken(t *testing.T, sub, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, token string) (*httptest.ResponseRecorder, Identity, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	verifier := &TokenVerifier{JWTSecret: testSecret}
	var seen Identity
	handler := verifier.AdminOnly(func(c echo.Context) error {
		seen = CallerIdentity(c)
		return c.NoContent(http.StatusOK)
	})
	return rec, seen, handler(c)
}

func TestAdminOnly_MissingToken(t *testing.T) {
	_, _, err := doRequest(t, "")
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAdminOnly_BadToken(t *testing.T) {
	_, _, err := doRequest(t, "not-a-token")
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAdminOnly_NonAdminRole(t *testing.T) {
	_, _, err := doRequest(t, signToken(t, "user-9", "customer"))
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestAdminOnly_AdminPasses(t *testing.T) {
	rec, ident, err := doRequest(t, signToken(t, "admin-3", "admin"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin-3", ident.Subject)
	assert.Equal(t, "admin", ident.Role)
}

func TestAdminOnly_CookieToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: signToken(t, "admin-5", "admin")})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	verifier := &TokenVerifier{JWTSecret: testSecret}
	handler := verifier.AdminOnly(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
