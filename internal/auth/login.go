package auth

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Handler issues admin tokens against a single configured credential.
type Handler struct {
	username     string
	passwordHash []byte
	tokens       *Tokens
	logger       *slog.Logger
}

func NewHandler(username, passwordHash string, tokens *Tokens, logger *slog.Logger) *Handler {
	return &Handler{
		username:     username,
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
		logger:       logger.With("component", "auth"),
	}
}

func (h *Handler) Register(g *echo.Group) {
	g.POST("/token", h.Login)
}

// ===== Login =====
func (h *Handler) Login(c echo.Context) error {
	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return err
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password))
	if !userOK || passErr != nil {
		h.logger.Info("admin login rejected", "username", req.Username, "ip", c.RealIP())
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	signed, err := h.tokens.Issue(req.Username, RoleAdmin)
	if err != nil {
		return err
	}
	h.logger.Info("admin token issued", "username", req.Username)
	return c.JSON(http.StatusOK, LoginResponse{Token: signed})
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
