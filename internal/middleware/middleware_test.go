package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/labstack/echo/v4"
	"github.com/safar/ar-storefront/internal/logger"
	"go.uber.org/zap"
)

func TestSubdomainFromHost(t *testing.T) {
	tests := []struct {
		host, base, want string
	}{
		{"demo.localhost:3000", "localhost", "demo"},
		{"Fashion.Example.com", "example.com", "fashion"},
		{"example.com", "example.com", ""},
		{"www.example.com", "example.com", ""},
		{"a.b.example.com", "example.com", ""},
		{"demo.other.com", "example.com", ""},
		{"demo.example.com.", "example.com", "demo"},
		{"demo.example.com", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			qt.New(t).Assert(SubdomainFromHost(tt.host, tt.base), qt.Equals, tt.want)
		})
	}
}

func TestTenantMiddleware(t *testing.T) {
	c := qt.New(t)

	e := echo.New()
	var seen string
	e.GET("/", func(ec echo.Context) error {
		seen = TenantFrom(ec)
		return ec.NoContent(http.StatusOK)
	}, Tenant("example.com"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "electronics.example.com"
	e.ServeHTTP(httptest.NewRecorder(), req)

	c.Assert(seen, qt.Equals, "electronics")
}

func TestRequestID(t *testing.T) {
	c := qt.New(t)

	e := echo.New()
	e.Use(RequestID(zap.NewNop()))
	var logged *zap.Logger
	e.GET("/", func(ec echo.Context) error {
		logged = logger.FromEcho(ec)
		return ec.String(http.StatusOK, ec.Get("request_id").(string))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	c.Assert(rec.Header().Get(HeaderRequestID), qt.Not(qt.Equals), "")
	c.Assert(rec.Body.String(), qt.Equals, rec.Header().Get(HeaderRequestID))
	c.Assert(logged, qt.IsNotNil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "client-id")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	c.Assert(rec.Header().Get(HeaderRequestID), qt.Equals, "client-id")
}

type ensurerFunc func(context.Context) error

func (f ensurerFunc) Ensure(ctx context.Context) error { return f(ctx) }

func TestEnsureSchema(t *testing.T) {
	c := qt.New(t)

	calls := 0
	failing := true
	e := echo.New()
	e.GET("/", func(ec echo.Context) error {
		return ec.NoContent(http.StatusOK)
	}, EnsureSchema(ensurerFunc(func(context.Context) error {
		calls++
		if failing {
			return errors.New("connection refused")
		}
		return nil
	})))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	c.Assert(rec.Code, qt.Equals, http.StatusInternalServerError)
	c.Assert(rec.Body.String(), qt.Not(qt.Contains), "connection refused")

	failing = false
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(calls, qt.Equals, 2)
}
