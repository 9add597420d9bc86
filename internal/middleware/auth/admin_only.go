package auth

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Identity is the verified caller passed to admin handlers. Token
// issuance lives in an external auth service; this middleware only
// verifies and extracts.
type Identity struct {
	Subject string
	Role    string
}

const identityKey = "auth_identity"

type TokenVerifier struct {
	JWTSecret []byte
}

func (t *TokenVerifier) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, err := t.identityFromRequest(c)
		if err != nil {
			return err
		}
		if ident.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		c.Set(identityKey, ident)
		return next(c)
	}
}

func (t *TokenVerifier) identityFromRequest(c echo.Context) (Identity, error) {
	tokenString := ""
	if cookie, err := c.Cookie("accessToken"); err == nil {
		tokenString = cookie.Value
	}
	if tokenString == "" {
		authz := c.Request().Header.Get("Authorization")
		if len(authz) > 7 && authz[:7] == "Bearer " {
			tokenString = authz[7:]
		}
	}
	if tokenString == "" {
		return Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	token, err := jwt.Parse(tokenString, func(t2 *jwt.Token) (interface{}, error) {
		if _, ok := t2.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t2.Header["alg"])
		}
		return t.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid subject claim")
	}
	return Identity{Subject: sub, Role: role}, nil
}

// CallerIdentity returns the identity stored by AdminOnly.
func CallerIdentity(c echo.Context) Identity {
	if v, ok := c.Get(identityKey).(Identity); ok {
		return v
	}
	return Identity{}
}
