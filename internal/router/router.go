package router

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/suyoungkwon2/phonitale-backend/internal/consent"
	"github.com/suyoungkwon2/phonitale-backend/internal/pages"
	"github.com/suyoungkwon2/phonitale-backend/internal/response"
	"github.com/suyoungkwon2/phonitale-backend/internal/word"
	"github.com/suyoungkwon2/phonitale-backend/pkg/utilities"
)

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// LoggingMiddleware tags each request with a KSUID request id and logs it at
// debug level using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := utilities.NewRequestID()
			w.Header().Set("X-Request-Id", reqID)
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"request_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
			)
		})
	}
}

// CORSMiddleware enables permissive cross-origin resource sharing on every
// route and answers OPTIONS preflights with 204. The study pages and the API
// can be deployed on different origins; tightening this is a deployment
// concern, not handled here.
func CORSMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Headers", "*")
			w.Header().Set("Access-Control-Allow-Methods", "*")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware sets common HTTP security headers for the page
// routes.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// route binds one (method, path) pair to a handler; every API endpoint
// declares itself in the table below rather than branching inside a shared
// handler.
type route struct {
	method  string
	path    string
	handler http.HandlerFunc
}

// RegisterRoutes mounts the API and page handlers on a ServeMux and wraps the
// whole tree with security, CORS and logging middleware. pg may be nil when
// the service runs API-only.
func RegisterRoutes(logger *zap.SugaredLogger, consentHandler *consent.Handler, responseHandler *response.Handler, wordHandler *word.Handler, pg *pages.Handler) http.Handler {
	mux := http.NewServeMux()

	api := []route{
		{http.MethodPost, "/api/consent", consentHandler.Submit},
		{http.MethodPost, "/api/responses", responseHandler.Submit},
		{http.MethodGet, "/api/words", wordHandler.List},
		{http.MethodGet, "/api/health", health},
	}
	for _, rt := range api {
		mux.HandleFunc(rt.path, requireMethod(rt.method, rt.handler))
	}
	// anything else under /api/ answers with the uniform error envelope
	mux.HandleFunc("/api/", apiNotFound)

	if pg != nil {
		flow := []struct {
			pattern  string
			template string
		}{
			{"GET /{$}", "index.html"},
			{"GET /consent", "consent.html"},
			{"GET /instruction", "instruction.html"},
			{"GET /round/{round}/start", "round_start.html"},
			{"GET /round/{round}/learning/start", "learning_start.html"},
			{"GET /round/{round}/learning", "learning.html"},
			{"GET /round/{round}/recognition/start", "recognition_start.html"},
			{"GET /round/{round}/recognition", "recognition.html"},
			{"GET /round/{round}/generation/start", "generation_start.html"},
			{"GET /round/{round}/generation", "generation.html"},
			{"GET /survey/start", "survey_start.html"},
			{"GET /survey", "survey.html"},
			{"GET /end", "end.html"},
		}
		for _, p := range flow {
			mux.HandleFunc(p.pattern, pg.Page(p.template))
		}
		mux.Handle("GET /static/", pg.Static())
	}

	return LoggingMiddleware(logger)(CORSMiddleware()(SecurityHeadersMiddleware()(mux)))
}

func requireMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			apiNotFound(w, r)
			return
		}
		next(w, r)
	}
}

func apiNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
}

func health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
