package middleware

import (
	"net/http"

	"github.com/damacus/snapsplit/internal/models"
	"github.com/damacus/snapsplit/internal/services"
	"github.com/damacus/snapsplit/internal/utils"
	"github.com/labstack/echo/v4"
)

// RequireSession rejects requests that do not carry a valid gallery session
// cookie with a JSON 401.
func RequireSession(sessions *services.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(utils.CookieName)
			if err != nil || !sessions.Valid(cookie.Value) {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
			}

			return next(c)
		}
	}
}
