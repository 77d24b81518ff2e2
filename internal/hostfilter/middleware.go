package hostfilter

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/secureapi/secureapi/internal/observability"
)

func Middleware(logger *slog.Logger, allow Allowlist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allow.Allows(r.Host) {
				if logger != nil {
					logger.WarnContext(r.Context(), "rejected untrusted host",
						slog.String("trace_id", observability.TraceIDFromContext(r.Context())),
						slog.String("host", r.Host),
						slog.String("path", r.URL.Path),
					)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(map[string]any{"detail": "invalid host header"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
