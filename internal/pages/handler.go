// Package pages serves the HTML flow of the experiment: consent, instruction,
// the per-round learning/recognition/generation pages, survey and end. It
// renders template files named by route and holds no business logic.
package pages

import (
	"bytes"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
)

type Config struct {
	TemplatesDir string
	StaticDir    string
}

// ConfigFromEnv reads page-layer config from env vars.
func ConfigFromEnv() Config {
	tpl := os.Getenv("TEMPLATES_DIR")
	if tpl == "" {
		tpl = "web/templates"
	}
	static := os.Getenv("STATIC_DIR")
	if static == "" {
		static = "web/static"
	}
	return Config{TemplatesDir: tpl, StaticDir: static}
}

// Handler renders the experiment flow templates.
type Handler struct {
	tmpl      *template.Template
	staticDir string
	logger    *zap.SugaredLogger
}

func NewHandler(cfg Config, logger *zap.SugaredLogger) (*Handler, error) {
	tmpl, err := template.ParseGlob(filepath.Join(cfg.TemplatesDir, "*.html"))
	if err != nil {
		return nil, err
	}
	return &Handler{tmpl: tmpl, staticDir: cfg.StaticDir, logger: logger}, nil
}

// PageData is the context passed to every template. RoundNumber is zero for
// pages outside a round.
type PageData struct {
	RoundNumber int
}

// Page returns a handler rendering the named template. Round pages pick the
// round number up from the {round} path segment.
func (h *Handler) Page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := PageData{}
		if v := r.PathValue("round"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				http.NotFound(w, r)
				return
			}
			data.RoundNumber = n
		}

		// buffer the render; nothing is written on a template failure
		var buf bytes.Buffer
		if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
			h.logger.Errorw("template render failed", "template", name, "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	}
}

// Static returns the file server for the /static/ subtree.
func (h *Handler) Static() http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.Dir(h.staticDir)))
}
