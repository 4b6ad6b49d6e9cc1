// Package context holds per-request values: the request ID on the echo context and a
// logger tagged with it in context.Context, where use cases pick it up.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is read from clients and echoed back on every response.
const HeaderXRequestID = echo.HeaderXRequestID

const echoRequestIDKey = "request_id"

type loggerKey struct{}

// WithLogger attaches the request-scoped logger, already tagged with request_id, to ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the request-scoped logger, or nil.
func Logger(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}

	logger, _ := ctx.Value(loggerKey{}).(*slog.Logger)

	return logger
}

// LoggerOr returns the request-scoped logger when present and fallback otherwise.
func LoggerOr(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := Logger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// BindRequestID stores the ID on the echo context for response envelopes.
func BindRequestID(c echo.Context, requestID string) {
	c.Set(echoRequestIDKey, requestID)
}

// RequestID returns the ID bound to c. Requests that bypassed the request ID
// middleware get a fresh one, bound so later reads agree.
func RequestID(c echo.Context) string {
	if id, ok := c.Get(echoRequestIDKey).(string); ok && id != "" {
		return id
	}

	id := uuid.NewString()
	BindRequestID(c, id)

	return id
}
