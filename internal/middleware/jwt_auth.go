package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gourdmobile/backend/internal/models"
	"github.com/gourdmobile/backend/internal/services"
	"github.com/labstack/echo/v4"
)

const (
	claimsKey = "user"
	authKey   = "auth"
)

// JWTAuthMiddleware checks for a valid, unrevoked JWT and stores the claims and the derived
// AuthContext on the echo context.
func JWTAuthMiddleware(tokens *services.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			claims, err := tokens.Parse(c.Request().Context(), parts[1])
			if err != nil {
				switch {
				case errors.Is(err, services.ErrTokenRevoked):
					return echo.NewHTTPError(http.StatusUnauthorized, "Token has been revoked")
				case errors.Is(err, services.ErrInvalidToken):
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
				default:
					return err
				}
			}

			c.Set(claimsKey, claims)
			c.Set(authKey, models.AuthContext{UserID: claims.UserID, IsAdmin: claims.IsAdmin})
			return next(c)
		}
	}
}

// AdminOnly must run after JWTAuthMiddleware.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth, ok := GetAuthContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if !auth.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Administrator privilege required")
			}
			return next(c)
		}
	}
}

func GetAuthContext(c echo.Context) (models.AuthContext, bool) {
	auth, ok := c.Get(authKey).(models.AuthContext)
	return auth, ok
}

func GetClaims(c echo.Context) (*models.JwtCustomClaims, bool) {
	claims, ok := c.Get(claimsKey).(*models.JwtCustomClaims)
	return claims, ok
}

// SetAuthContext is used by tests that bypass token verification.
func SetAuthContext(c echo.Context, auth models.AuthContext) {
	c.Set(authKey, auth)
}
