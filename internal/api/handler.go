package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"github.com/secureapi/secureapi/internal/config"
	"github.com/secureapi/secureapi/internal/hostfilter"
	"github.com/secureapi/secureapi/internal/observability"
	"github.com/secureapi/secureapi/internal/readiness"
)

type Dependencies struct {
	Logger    *slog.Logger
	Metrics   *observability.Metrics
	Readiness readiness.Check
}

func NewHandler(cfg config.Config, deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "alive",
			"app":     cfg.App.Name,
			"version": cfg.App.Version,
		})
	})

	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		if deps.Readiness == nil {
			writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
			return
		}
		timeout := cfg.Readiness.Timeout
		if timeout <= 0 {
			timeout = 2 * time.Second
		}
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		if err := deps.Readiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"detail": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
	})

	// Legacy probe kept for platforms that only know /health.
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})

	mux.HandleFunc("POST /echo", handleEcho)

	if cfg.Metrics.Enabled && deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics.Handler())
	} else {
		mux.HandleFunc("GET /metrics", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]any{"detail": "metrics disabled"})
		})
	}

	// Instrumentation sits above the host filter and gzip so that rejected
	// and unmatched traffic is counted too.
	middlewares := []func(http.Handler) http.Handler{
		observability.TraceMiddleware,
		observability.InstrumentMiddleware(deps.Logger, deps.Metrics, muxRoute(mux)),
		hostfilter.Middleware(deps.Logger, hostfilter.ParseAllowlist(cfg.Security.AllowedHosts)),
	}
	if wrapper, err := newGzipWrapper(cfg.Security.GzipMinSize); err == nil {
		middlewares = append(middlewares, wrapper)
	} else if deps.Logger != nil {
		deps.Logger.Warn("response compression disabled", slog.Any("error", err))
	}
	if deps.Logger != nil {
		middlewares = append(middlewares, observability.LoggingMiddleware(deps.Logger))
	}
	return chain(mux, middlewares...)
}

// muxRoute resolves the pattern a request matches without dispatching it,
// giving the instrumentation middleware a bounded route label.
func muxRoute(mux *http.ServeMux) observability.RouteFunc {
	return func(r *http.Request) string {
		_, pattern := mux.Handler(r)
		return pattern
	}
}

func newGzipWrapper(minSize int) (func(http.Handler) http.Handler, error) {
	var (
		wrap func(http.Handler) http.HandlerFunc
		err  error
	)
	if minSize > 0 {
		wrap, err = gzhttp.NewWrapper(gzhttp.MinSize(minSize))
	} else {
		wrap, err = gzhttp.NewWrapper()
	}
	if err != nil {
		return nil, err
	}
	return func(next http.Handler) http.Handler {
		return wrap(next)
	}, nil
}

func chain(base http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	wrapped := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
