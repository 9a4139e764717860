package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type contextKey string

const loggerKey contextKey = "logger"

// quietRoutes are served without request logs
var quietRoutes = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// InitLogger installs a JSON slog handler at LOG_LEVEL (debug/info/warn/error)
func InitLogger() {
	level := parseLogLevel(os.Getenv("LOG_LEVEL"))
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
	slog.Info("logger initialized", "level", level.String())
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// generateRequestID creates a short random ID for request tracing
func generateRequestID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// LoggerFromContext returns the request's logger, which carries the request
// ID, the matched route and the gallery owner when there is one
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// routeTemplate names the matched mux route, or the raw path when no route matched
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

// RequestLoggingMiddleware tags each gallery request with an ID and a scoped
// logger, then logs its outcome at a level chosen by status
func RequestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := routeTemplate(r)
		if quietRoutes[route] || strings.HasPrefix(r.URL.Path, "/static/") {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		requestID := generateRequestID()
		w.Header().Set("X-Request-ID", requestID)

		attrs := []any{"request_id", requestID, "route", route}
		if owner := mux.Vars(r)["owner"]; owner != "" {
			attrs = append(attrs, "owner", owner)
		}
		logger := slog.Default().With(attrs...)
		r = r.WithContext(context.WithValue(r.Context(), loggerKey, logger))

		wrapped := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		logger.Debug("request started", "method", r.Method, "remote_addr", r.RemoteAddr)

		next.ServeHTTP(wrapped, r)

		result := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		switch {
		case wrapped.statusCode >= 500:
			httpErrorsTotal.Add(1)
			logger.Error("request failed", result...)
		case wrapped.statusCode >= 400:
			logger.Warn("request error", result...)
		default:
			logger.Debug("request completed", result...)
		}
		httpRequestsTotal.Add(1)
	})
}

// statusResponseWriter records the status code written by a handler
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
