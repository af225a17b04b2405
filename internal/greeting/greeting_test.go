package greeting

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(language.Korean, DefaultMessages)
	require.NoError(t, err)
	return c
}

func get(e *echo.Echo, path string, acceptLanguage string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCatalog_Message(t *testing.T) {
	c := newTestCatalog(t)

	tests := []struct {
		name           string
		acceptLanguage string
		want           string
	}{
		{"english", "en", "Hello"},
		{"english region", "en-US,en;q=0.9", "Hello"},
		{"french", "fr", "Bonjour"},
		{"korean", "ko-KR", "안녕하세요"},
		{"weighted preference", "de;q=0.9, fr;q=0.8", "Bonjour"},
		{"unsupported", "de", "안녕하세요"},
		{"missing header", "", "안녕하세요"},
		{"garbage header", ";;;", "안녕하세요"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Message(MessageKey, tt.acceptLanguage)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalog_KeyMissingInLocaleFallsBack(t *testing.T) {
	c, err := NewCatalog(language.Korean, map[language.Tag]map[string]string{
		language.Korean:  {"farewell": "안녕히 가세요", MessageKey: "안녕하세요"},
		language.English: {MessageKey: "Hello"},
	})
	require.NoError(t, err)

	got, err := c.Message("farewell", "en")
	require.NoError(t, err)
	assert.Equal(t, "안녕히 가세요", got)
}

func TestCatalog_KeyMissingEverywhere(t *testing.T) {
	c := newTestCatalog(t)

	_, err := c.Message("nope", "en")
	assert.Error(t, err)
}

func TestNewCatalog_RequiresFallbackMessages(t *testing.T) {
	_, err := NewCatalog(language.German, DefaultMessages)
	assert.Error(t, err)
}

func TestHandler_Routes(t *testing.T) {
	e := echo.New()
	NewHandler(newTestCatalog(t)).Register(e)

	rec := get(e, "/hello-world", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello World", rec.Body.String())

	rec = get(e, "/hello-world-bean", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello World"}`, rec.Body.String())

	rec = get(e, "/hello-world-bean/path-variable/Kenneth", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello World, Kenneth"}`, rec.Body.String())

	rec = get(e, "/hello-world-internationalized", "fr")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bonjour", rec.Body.String())

	rec = get(e, "/hello-world-internationalized", "")
	assert.Equal(t, "안녕하세요", rec.Body.String())
}
