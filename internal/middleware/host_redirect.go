package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// HostRedirect sends every request whose Host header starts with prefix to
// target with a 302. An empty prefix disables the redirect.
func HostRedirect(prefix, target string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if prefix != "" && strings.HasPrefix(c.Request().Host, prefix) {
				return c.Redirect(http.StatusFound, target)
			}
			return next(c)
		}
	}
}
