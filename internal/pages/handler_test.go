package pages

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPages(t *testing.T) *Handler {
	t.Helper()
	dir := t.TempDir()
	templates := map[string]string{
		"index.html":       "<h1>welcome</h1>",
		"round_start.html": "<h1>round {{.RoundNumber}}</h1>",
	}
	for name, content := range templates {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	h, err := NewHandler(Config{TemplatesDir: dir, StaticDir: dir}, zap.NewNop().Sugar())
	require.NoError(t, err)
	return h
}

func TestPageRendersTemplate(t *testing.T) {
	h := newTestPages(t)
	rec := httptest.NewRecorder()
	h.Page("index.html")(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "welcome")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestPagePassesRoundNumber(t *testing.T) {
	h := newTestPages(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /round/{round}/start", h.Page("round_start.html"))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/round/3/start", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "round 3")
}

func TestPageRejectsBadRoundNumber(t *testing.T) {
	h := newTestPages(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /round/{round}/start", h.Page("round_start.html"))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/round/zero/start", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewHandlerMissingTemplates(t *testing.T) {
	_, err := NewHandler(Config{TemplatesDir: t.TempDir(), StaticDir: "."}, zap.NewNop().Sugar())

	require.Error(t, err, "an empty template dir must not be silently accepted")
}
