package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Response is the JSON body of every failed request.
type Response struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Details   any       `json:"details"`
}

var statusByKind = map[Kind]int{
	KindUnhandled:  http.StatusInternalServerError,
	KindNotFound:   http.StatusNotFound,
	KindValidation: http.StatusBadRequest,
}

// StatusOf returns the HTTP status for a kind.
func StatusOf(k Kind) int {
	if s, ok := statusByKind[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Resolve converts err into a status code and response body for request r.
func Resolve(err error, r *http.Request) (int, Response) {
	resp := Response{
		Timestamp: time.Now(),
		Details:   describe(r),
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		resp.Message = appErr.Message
		if appErr.Kind == KindValidation {
			resp.Message = ValidationMessage
			resp.Details = appErr.Violations
			if appErr.Violations == nil {
				resp.Details = []Violation{}
			}
		} else if appErr.Kind == KindUnhandled {
			resp.Message = appErr.Error()
		}
		return StatusOf(appErr.Kind), resp
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch m := he.Message.(type) {
		case string:
			resp.Message = m
		case error:
			resp.Message = m.Error()
		default:
			resp.Message = fmt.Sprint(m)
		}
		return he.Code, resp
	}

	resp.Message = err.Error()
	return StatusOf(KindUnhandled), resp
}

// describe mirrors the short request description used in error details.
func describe(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return "uri=" + r.URL.Path
}

// Handler returns the echo error handler that renders every failure.
func Handler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		req := c.Request()
		status, resp := Resolve(err, req)

		attrs := []any{
			"status", status,
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		}
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(req.Context(), "request failed", append(attrs, "error", err)...)
		} else {
			logger.InfoContext(req.Context(), "request rejected", append(attrs, "message", resp.Message)...)
		}

		if req.Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, resp)
		}
		if err != nil {
			logger.ErrorContext(req.Context(), "write error response", "error", err)
		}
	}
}
