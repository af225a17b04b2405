package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/restful-users/internal/auth"
)

// JWT validates the bearer token and stores its subject, role and claims
// on the context for downstream guards.
func JWT(tokens *auth.Tokens) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing Authorization header")
			}

			const prefix = "Bearer "
			if len(authHeader) <= len(prefix) || !strings.EqualFold(authHeader[:len(prefix)], prefix) {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid Authorization format")
			}

			claims, err := tokens.Parse(authHeader[len(prefix):])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token").SetInternal(err)
			}

			c.Set(auth.ContextUserID, claims.Subject)
			c.Set(auth.ContextRole, claims.Role)
			c.Set(auth.ContextClaims, claims)
			return next(c)
		}
	}
}
