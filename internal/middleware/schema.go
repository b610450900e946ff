package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/safar/ar-storefront/internal/logger"
	"go.uber.org/zap"
)

// Ensurer prepares the database before first use.
type Ensurer interface {
	Ensure(ctx context.Context) error
}

// EnsureSchema makes sure the schema exists before a data route runs.
func EnsureSchema(e Ensurer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := e.Ensure(c.Request().Context()); err != nil {
				logger.FromEcho(c).Error("Database initialization failed", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"error": "Database unavailable",
				})
			}
			return next(c)
		}
	}
}
