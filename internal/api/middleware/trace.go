package middleware

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/taskmate-api/internal/api/shared"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
)

// TraceMiddleware adds a trace ID and a request-scoped logger to the request
// context, using slog.Default() as the base logger.
func TraceMiddleware(next http.Handler) http.Handler {
	return Trace(nil)(next)
}

// Trace returns middleware that adds a trace ID to the request context and
// stores a logger carrying it, so downstream code can use logger.FromContext.
// When chi's RequestID middleware ran first, its ID is attached as well.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := base
			if l == nil {
				l = slog.Default()
			}

			ctx := shared.SetTraceID(r.Context())
			ctx = logger.WithLogger(ctx, l.With(slog.String("trace_id", shared.GetTraceID(ctx))))
			if reqID := chimw.GetReqID(ctx); reqID != "" {
				ctx = logger.WithRequestID(ctx, reqID)
			}

			logger.FromContext(ctx).Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
