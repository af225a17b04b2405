package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = Handler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return e
}

func serve(t *testing.T, e *echo.Echo, method, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHandler_NotFound(t *testing.T) {
	e := newTestEcho()
	e.GET("/users/:id", func(c echo.Context) error {
		return NotFound("ID[%s] not found", c.Param("id"))
	})

	rec, body := serve(t, e, http.MethodGet, "/users/42")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ID[42] not found", body["message"])
	assert.Equal(t, "uri=/users/42", body["details"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHandler_Validation(t *testing.T) {
	e := newTestEcho()
	e.POST("/users", func(c echo.Context) error {
		return ValidationFailed([]Violation{{Field: "name", RejectedValue: "u", Message: "too short"}})
	})

	rec, body := serve(t, e, http.MethodPost, "/users")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ValidationMessage, body["message"])
	details, ok := body["details"].([]any)
	require.True(t, ok, "details should be a list, got %T", body["details"])
	require.Len(t, details, 1)
	v := details[0].(map[string]any)
	assert.Equal(t, "name", v["field"])
	assert.Equal(t, "u", v["rejectedValue"])
}

func TestHandler_Unhandled(t *testing.T) {
	e := newTestEcho()
	e.GET("/boom", func(c echo.Context) error {
		return fmt.Errorf("find users: %w", errors.New("connection reset"))
	})

	rec, body := serve(t, e, http.MethodGet, "/boom")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "find users: connection reset", body["message"])
	assert.Equal(t, "uri=/boom", body["details"])
}

func TestHandler_EchoHTTPErrorKeepsStatus(t *testing.T) {
	e := newTestEcho()

	rec, body := serve(t, e, http.MethodGet, "/nowhere")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", body["message"])
	assert.Equal(t, "uri=/nowhere", body["details"])
}

func TestHandler_HeadHasNoBody(t *testing.T) {
	e := newTestEcho()
	e.HEAD("/users/:id", func(c echo.Context) error {
		return NotFound("ID[%s] not found", c.Param("id"))
	})

	rec, body := serve(t, e, http.MethodHead, "/users/7")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Nil(t, body)
}

func TestResolve_WrappedAppError(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/users/3", nil)
	err := fmt.Errorf("delete: %w", NotFound("ID[%d] not found", 3))

	status, resp := Resolve(err, req)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "ID[3] not found", resp.Message)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindUnhandled, http.StatusInternalServerError},
		{KindNotFound, http.StatusNotFound},
		{KindValidation, http.StatusBadRequest},
		{Kind(99), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.kind))
		})
	}
}
