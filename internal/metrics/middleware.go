package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// Middleware records count and duration of every request by route pattern.
func (m *Metrics) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		status := c.Response().Status
		var he *echo.HTTPError
		if err != nil && errors.As(err, &he) {
			status = he.Code
		} else if err != nil && !c.Response().Committed {
			status = http.StatusInternalServerError
		}

		method := c.Request().Method
		path := c.Path()
		code := strconv.Itoa(status)

		m.HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path, code).Observe(time.Since(start).Seconds())

		return err
	}
}
