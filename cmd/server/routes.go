package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sudo-init-do/restful-users/internal/admin"
	"github.com/sudo-init-do/restful-users/internal/apperr"
	"github.com/sudo-init-do/restful-users/internal/auth"
	"github.com/sudo-init-do/restful-users/internal/config"
	"github.com/sudo-init-do/restful-users/internal/greeting"
	mware "github.com/sudo-init-do/restful-users/internal/middleware"
	"github.com/sudo-init-do/restful-users/internal/user"
)

type deps struct {
	cfg       config.Config
	logger    *slog.Logger
	users     *user.Service
	validator *user.Validator
	catalog   *greeting.Catalog
}

func newEcho(d deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = apperr.Handler(d.logger)
	e.Validator = d.validator

	// Basic middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			// failures are logged with their cause by the error handler
			d.logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: d.cfg.CORSOrigins}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/ready", func(c echo.Context) error {
		if err := d.users.Ready(c.Request().Context()); err != nil {
			d.logger.Warn("readiness check failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "store unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})

	greeting.NewHandler(d.catalog).Register(e)
	user.NewHandler(d.users, d.validator).Register(e.Group(""))

	if !d.cfg.AuthEnabled() {
		d.logger.Warn("JWT_SECRET or ADMIN_PASSWORD_HASH not set; auth and admin routes disabled")
		return e
	}
	tokens := auth.NewTokens(d.cfg.JWTSecret, d.cfg.TokenTTL)

	// Auth routes with per-IP rate limiting to protect login from abuse
	authGroup := e.Group("/auth")
	authGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	auth.NewHandler(d.cfg.AdminUsername, d.cfg.AdminPasswordHash, tokens, d.logger).Register(authGroup)
	authGroup.GET("/me", auth.Me, mware.JWT(tokens), mware.RequireRoles(auth.RoleAdmin))

	// Admin routes
	adminGroup := e.Group("/admin")
	adminGroup.Use(mware.JWT(tokens))
	adminGroup.Use(mware.AdminGuard)
	admin.NewHandler(d.users).Register(adminGroup)

	return e
}

func seed(ctx context.Context, d deps) error {
	if !d.cfg.SeedUsers {
		return nil
	}
	return d.users.Seed(ctx, user.DefaultUsers(nowFunc())...)
}
