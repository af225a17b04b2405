package admin

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type StatsResponse struct {
	Users        int        `json:"users"`
	FirstJoined  *time.Time `json:"firstJoined,omitempty"`
	LatestJoined *time.Time `json:"latestJoined,omitempty"`
}

// GET /admin/stats
func (h *Handler) Stats(c echo.Context) error {
	users, err := h.svc.FindAll(c.Request().Context())
	if err != nil {
		return err
	}

	resp := StatsResponse{Users: len(users)}
	for i := range users {
		jd := users[i].JoinDate
		if resp.FirstJoined == nil || jd.Before(*resp.FirstJoined) {
			resp.FirstJoined = &jd
		}
		if resp.LatestJoined == nil || jd.After(*resp.LatestJoined) {
			resp.LatestJoined = &jd
		}
	}
	return c.JSON(http.StatusOK, resp)
}
