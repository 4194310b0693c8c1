package handlers

import (
	"net/http"

	"github.com/damacus/snapsplit/internal/models"
	"github.com/damacus/snapsplit/internal/services"
	"github.com/damacus/snapsplit/internal/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type AuthHandler struct {
	sessions     *services.SessionService
	secureCookie bool
	log          zerolog.Logger
}

func NewAuthHandler(sessions *services.SessionService, secureCookie bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions:     sessions,
		secureCookie: secureCookie,
		log:          log.With().Str("component", "auth").Logger(),
	}
}

// Login checks the JSON credentials and issues the session cookie
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Result{Success: false, Error: "Invalid request"})
	}

	if !h.sessions.Authenticate(req.Username, req.Password) {
		h.log.Warn().Str("ip", c.RealIP()).Msg("gallery login rejected")
		return c.JSON(http.StatusUnauthorized, models.Result{Success: false, Error: "Invalid credentials"})
	}

	SetSessionCookie(c, h.sessions.Token(), h.secureCookie)
	return c.JSON(http.StatusOK, models.Result{Success: true})
}

// Status reports whether the caller holds a valid session
func (h *AuthHandler) Status(c echo.Context) error {
	authenticated := false
	if cookie, err := c.Cookie(utils.CookieName); err == nil {
		authenticated = h.sessions.Valid(cookie.Value)
	}
	return c.JSON(http.StatusOK, models.AuthStatus{Authenticated: authenticated})
}

// Logout clears the session
func (h *AuthHandler) Logout(c echo.Context) error {
	ClearSessionCookie(c, h.secureCookie)
	return c.JSON(http.StatusOK, models.Result{Success: true})
}
