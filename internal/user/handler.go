package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/restful-users/internal/apperr"
)

// Handler exposes the user service over /users.
type Handler struct {
	svc      *Service
	validate *Validator
}

func NewHandler(svc *Service, v *Validator) *Handler {
	return &Handler{svc: svc, validate: v}
}

// Register mounts the user routes on g.
func (h *Handler) Register(g *echo.Group) {
	g.GET("/users", h.List)
	g.GET("/users/:id", h.Get)
	g.POST("/users", h.Create)
	g.PUT("/users/:id", h.Update)
	g.DELETE("/users/:id", h.Delete)
}

// GET /users
func (h *Handler) List(c echo.Context) error {
	users, err := h.svc.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GET /users/:id
func (h *Handler) Get(c echo.Context) error {
	id, err := PathID(c)
	if err != nil {
		return err
	}

	u, found, err := h.svc.FindOne(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !found {
		return NotFound(id)
	}
	return c.JSON(http.StatusOK, h.resource(c, u))
}

// POST /users
func (h *Handler) Create(c echo.Context) error {
	u, err := h.bind(c)
	if err != nil {
		return err
	}

	saved, err := h.svc.Create(c.Request().Context(), u)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, usersURL(c)+"/"+strconv.Itoa(saved.ID))
	return c.NoContent(http.StatusCreated)
}

// PUT /users/:id
func (h *Handler) Update(c echo.Context) error {
	id, err := PathID(c)
	if err != nil {
		return err
	}
	u, err := h.bind(c)
	if err != nil {
		return err
	}

	updated, found, err := h.svc.Update(c.Request().Context(), id, u)
	if err != nil {
		return err
	}
	if !found {
		return NotFound(id)
	}
	return c.JSON(http.StatusOK, h.resource(c, updated))
}

// DELETE /users/:id
func (h *Handler) Delete(c echo.Context) error {
	id, err := PathID(c)
	if err != nil {
		return err
	}

	_, found, err := h.svc.DeleteByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !found {
		return NotFound(id)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) bind(c echo.Context) (User, error) {
	var req request
	if err := c.Bind(&req); err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return User{}, appErr
		}
		return User{}, echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	u := req.user()
	if err := h.validate.ValidateLocalized(&u, c.Request().Header.Get("Accept-Language")); err != nil {
		return User{}, err
	}
	return u, nil
}

func (h *Handler) resource(c echo.Context, u User) Resource {
	return Resource{
		User:  u,
		Links: []Link{{Rel: "all-users", Href: usersURL(c)}},
	}
}

// NotFound is the condition reported when no user has the given id.
func NotFound(id int) *apperr.Error {
	return apperr.NotFound("ID[%d] not found", id)
}

// PathID parses the :id path parameter.
func PathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id").SetInternal(err)
	}
	return id, nil
}

func usersURL(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host + "/users"
}
