package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/restful-users/internal/auth"
)

// AdminGuard ensures only admin users can access admin routes
func AdminGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, ok := c.Get(auth.ContextRole).(string)
		if !ok || role != auth.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access only")
		}
		return next(c)
	}
}
