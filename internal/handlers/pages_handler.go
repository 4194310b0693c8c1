package handlers

import (
	"net/http"

	"github.com/damacus/snapsplit/internal/models"
	"github.com/damacus/snapsplit/internal/services"
	"github.com/labstack/echo/v4"
)

// PagesHandler serves the server-rendered marketing, legal and gallery pages.
type PagesHandler struct {
	appStoreURL string
}

func NewPagesHandler(appStoreURL string) *PagesHandler {
	return &PagesHandler{appStoreURL: appStoreURL}
}

// Page returns a handler rendering the named template.
func (h *PagesHandler) Page(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, name, h.data())
	}
}

// Share renders the app download page for a shared bill link.
func (h *PagesHandler) Share(c echo.Context) error {
	data := h.data()
	data.HasData = c.QueryParam("data") != ""
	return c.Render(http.StatusOK, "share", data)
}

func (h *PagesHandler) data() models.PageData {
	return models.PageData{
		AppStoreURL: h.appStoreURL,
		PageSize:    services.DefaultPageSize,
	}
}
