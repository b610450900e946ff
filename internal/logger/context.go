package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type contextKey int

const loggerKey contextKey = iota

// echoKey is where the request-scoped logger lives on an echo.Context.
const echoKey = "logger"

func WithLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext returns the logger stored on ctx, or the global logger.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.L()
}

// FromEcho returns the request-scoped logger of an echo request.
func FromEcho(c echo.Context) *zap.Logger {
	if l, ok := c.Get(echoKey).(*zap.Logger); ok {
		return l
	}
	return FromContext(c.Request().Context())
}

// Attach stores log on both the echo context and the request context.
func Attach(c echo.Context, log *zap.Logger) {
	c.Set(echoKey, log)
	c.SetRequest(c.Request().WithContext(WithLogger(c.Request().Context(), log)))
}
