package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/safar/ar-storefront/internal/logger"
	"go.uber.org/zap"
)

const HeaderRequestID = "X-Request-ID"

// RequestID tags every request with an id, reusing one sent by the client,
// and attaches a logger carrying it.
func RequestID(base *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			c.Request().Header.Set(HeaderRequestID, requestID)
			c.Response().Header().Set(HeaderRequestID, requestID)
			c.Set("request_id", requestID)

			logger.Attach(c, base.With(zap.String("request_id", requestID)))

			return next(c)
		}
	}
}
