package greeting

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Bean is the JSON body of the hello-world-bean routes.
type Bean struct {
	Message string `json:"message"`
}

// Handler serves the hello-world routes.
type Handler struct {
	catalog *Catalog
}

// NewHandler returns a Handler resolving localized messages from c.
func NewHandler(c *Catalog) *Handler {
	return &Handler{catalog: c}
}

// Register mounts the hello-world routes on e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/hello-world", h.HelloWorld)
	e.GET("/hello-world-bean", h.HelloWorldBean)
	e.GET("/hello-world-bean/path-variable/:name", h.HelloWorldName)
	e.GET("/hello-world-internationalized", h.Internationalized)
}

// GET /hello-world
func (h *Handler) HelloWorld(c echo.Context) error {
	return c.String(http.StatusOK, "Hello World")
}

// GET /hello-world-bean
func (h *Handler) HelloWorldBean(c echo.Context) error {
	return c.JSON(http.StatusOK, Bean{Message: "Hello World"})
}

// GET /hello-world-bean/path-variable/:name
func (h *Handler) HelloWorldName(c echo.Context) error {
	return c.JSON(http.StatusOK, Bean{Message: fmt.Sprintf("Hello World, %s", c.Param("name"))})
}

// GET /hello-world-internationalized
func (h *Handler) Internationalized(c echo.Context) error {
	msg, err := h.catalog.Message(MessageKey, c.Request().Header.Get("Accept-Language"))
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, msg)
}
