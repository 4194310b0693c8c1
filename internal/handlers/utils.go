package handlers

import (
	"net/http"

	"github.com/damacus/snapsplit/internal/errs"
	"github.com/damacus/snapsplit/internal/models"
	"github.com/damacus/snapsplit/internal/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// RespondError writes the JSON error response for a core error. Caller input
// errors echo their message; store failures are logged and replaced by
// fallback so driver details never reach the client.
func RespondError(c echo.Context, log zerolog.Logger, err error, fallback string) error {
	switch {
	case errs.IsInvalidArgument(err):
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errs.MessageOf(err, "Invalid request")})
	case errs.IsNotFound(err):
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: errs.MessageOf(err, "Not found")})
	default:
		log.Error().
			Err(err).
			Str("kind", errs.KindOf(err).String()).
			Str("path", c.Path()).
			Msg(fallback)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: fallback})
	}
}

// SetSessionCookie issues the gallery session cookie.
func SetSessionCookie(c echo.Context, token string, secure bool) {
	cookie := new(http.Cookie)
	cookie.Name = utils.CookieName
	cookie.Value = token
	cookie.MaxAge = utils.SessionMaxAge
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.SameSite = http.SameSiteStrictMode
	cookie.Secure = secure
	c.SetCookie(cookie)
}

// ClearSessionCookie expires the gallery session cookie.
func ClearSessionCookie(c echo.Context, secure bool) {
	cookie := new(http.Cookie)
	cookie.Name = utils.CookieName
	cookie.Value = ""
	cookie.MaxAge = -1
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.SameSite = http.SameSiteStrictMode
	cookie.Secure = secure
	c.SetCookie(cookie)
}
