package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Context keys set by the JWT middleware.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextClaims = "claims"
)

type MeResponse struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Me returns the identity carried by the caller's token.
func Me(c echo.Context) error {
	claims, ok := c.Get(ContextClaims).(*Claims)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	resp := MeResponse{Username: claims.Subject, Role: claims.Role}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return c.JSON(http.StatusOK, resp)
}
