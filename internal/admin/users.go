package admin

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/restful-users/internal/user"
)

const (
	HeaderAPIVersion = "X-API-VERSION"
	DefaultGrade     = "VIP"
)

// UserV1 is the admin view of a user: credentials are left out, ssn is kept.
type UserV1 struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	JoinDate time.Time `json:"joinDate"`
	SSN      string    `json:"ssn"`
}

// UserV2 is the admin view with a membership grade instead of the ssn.
type UserV2 struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	JoinDate time.Time `json:"joinDate"`
	Grade    string    `json:"grade"`
}

func ToV1(u user.User) UserV1 {
	return UserV1{ID: u.ID, Name: u.Name, JoinDate: u.JoinDate, SSN: u.SSN}
}

func ToV2(u user.User, grade string) UserV2 {
	return UserV2{ID: u.ID, Name: u.Name, JoinDate: u.JoinDate, Grade: grade}
}

// serializers maps an API version to its view.
var serializers = map[string]func(user.User) any{
	"1": func(u user.User) any { return ToV1(u) },
	"2": func(u user.User) any { return ToV2(u, DefaultGrade) },
}

type Handler struct {
	svc *user.Service
}

func NewHandler(svc *user.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the admin routes; g is expected to be guarded already.
func (h *Handler) Register(g *echo.Group) {
	g.GET("/stats", h.Stats)
	g.GET("/users", h.ListUsers)
	g.GET("/users/:id", h.GetUserByHeader)
	g.GET("/v1/users/:id", h.version("1"))
	g.GET("/v2/users/:id", h.version("2"))
}

// GET /admin/users
func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.svc.FindAll(c.Request().Context())
	if err != nil {
		return err
	}

	views := make([]UserV1, 0, len(users))
	for _, u := range users {
		views = append(views, ToV1(u))
	}
	return c.JSON(http.StatusOK, views)
}

// GET /admin/users/:id with X-API-VERSION: 1|2
func (h *Handler) GetUserByHeader(c echo.Context) error {
	v := c.Request().Header.Get(HeaderAPIVersion)
	if v == "" {
		v = "1"
	}
	return h.render(c, v)
}

func (h *Handler) version(v string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.render(c, v)
	}
}

func (h *Handler) render(c echo.Context, version string) error {
	serialize, ok := serializers[version]
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported API version "+version)
	}

	id, err := user.PathID(c)
	if err != nil {
		return err
	}
	u, found, err := h.svc.FindOne(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !found {
		return user.NotFound(id)
	}
	return c.JSON(http.StatusOK, serialize(u))
}
