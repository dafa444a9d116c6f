package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// NewStructuredLogger logs one structured line per request. The line is
// emitted from a defer so panicking handlers still get logged once the
// recoverer converts them to a 500.
func NewStructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			start := time.Now()
			defer func() {
				logRequest(logger, r, ww.Status(), ww.BytesWritten(), time.Since(start))
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}

func logRequest(logger *slog.Logger, r *http.Request, status, bytes int, latency time.Duration) {
	request := slog.Group("request",
		slog.String("id", middleware.GetReqID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("remote_addr", r.RemoteAddr),
	)
	response := slog.Group("response",
		slog.Int("status", status),
		slog.Int("bytes", bytes),
		slog.Int64("latency_ms", latency.Milliseconds()),
	)

	switch {
	case status >= 500:
		logger.Error("server error", request, response)
	case status >= 400:
		logger.Warn("request failed", request, response)
	default:
		logger.Info("request completed", request, response)
	}
}
