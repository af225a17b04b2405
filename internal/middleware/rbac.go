package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/restful-users/internal/auth"
)

// RequireRoles ensures the requester's role is one of the allowed roles.
// Usage: route(..., RequireRoles("admin"))
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(auth.ContextRole).(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusForbidden, "role missing")
			}
			if !slices.Contains(roles, role) {
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
			return next(c)
		}
	}
}
