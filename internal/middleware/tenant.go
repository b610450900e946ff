package middleware

import (
	"net"
	"strings"

	"github.com/labstack/echo/v4"
)

const tenantKey = "tenant"

// SubdomainFromHost returns the tenant label of host under baseDomain, or ""
// for the bare domain, "www" and foreign hosts.
func SubdomainFromHost(host, baseDomain string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	baseDomain = strings.ToLower(baseDomain)

	suffix := "." + baseDomain
	if baseDomain == "" || !strings.HasSuffix(host, suffix) {
		return ""
	}

	label := strings.TrimSuffix(host, suffix)
	if label == "" || label == "www" || strings.Contains(label, ".") {
		return ""
	}
	return label
}

// Tenant resolves the tenant subdomain from the Host header.
func Tenant(baseDomain string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sub := SubdomainFromHost(c.Request().Host, baseDomain); sub != "" {
				c.Set(tenantKey, sub)
			}
			return next(c)
		}
	}
}

// TenantFrom returns the subdomain Tenant stored, if any.
func TenantFrom(c echo.Context) string {
	sub, _ := c.Get(tenantKey).(string)
	return sub
}
