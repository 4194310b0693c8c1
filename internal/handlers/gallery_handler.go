package handlers

import (
	"net/http"
	"strconv"

	"github.com/damacus/snapsplit/internal/models"
	"github.com/damacus/snapsplit/internal/services"
	"github.com/damacus/snapsplit/internal/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type GalleryHandler struct {
	gallery *services.GalleryService
	log     zerolog.Logger
}

func NewGalleryHandler(gallery *services.GalleryService, log zerolog.Logger) *GalleryHandler {
	return &GalleryHandler{
		gallery: gallery,
		log:     log.With().Str("component", "gallery_handler").Logger(),
	}
}

// ListImages returns one page of the gallery.
// A missing or non-numeric page means the first page; limit must be a
// positive integer and defaults to DefaultPageSize.
func (h *GalleryHandler) ListImages(c echo.Context) error {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		page = 1
	}

	limit, ok := positiveQueryInt(c, "limit", services.DefaultPageSize)
	if !ok {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid limit parameter"})
	}

	result, err := h.gallery.GetPage(c.Request().Context(), page, limit)
	if err != nil {
		return RespondError(c, h.log, err, "Failed to fetch images")
	}
	return c.JSON(http.StatusOK, result)
}

// RecentImages returns the newest images without pagination metadata.
func (h *GalleryHandler) RecentImages(c echo.Context) error {
	limit, ok := positiveQueryInt(c, "limit", services.MaxRecentImages)
	if !ok {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid limit parameter"})
	}

	images, err := h.gallery.GetFirstN(c.Request().Context(), limit)
	if err != nil {
		return RespondError(c, h.log, err, "Failed to fetch images")
	}
	return c.JSON(http.StatusOK, models.ImageList{Images: images})
}

// DeleteImage permanently removes the image named in the JSON body.
func (h *GalleryHandler) DeleteImage(c echo.Context) error {
	var req models.DeleteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Image key is required"})
	}

	if err := h.gallery.Delete(c.Request().Context(), req.Key); err != nil {
		return RespondError(c, h.log, err, "Failed to delete image")
	}
	return c.JSON(http.StatusOK, models.Result{Success: true, Message: "Image deleted successfully"})
}

// DownloadImage streams the stored bytes back as an attachment.
func (h *GalleryHandler) DownloadImage(c echo.Context) error {
	d, err := h.gallery.Download(c.Request().Context(), c.QueryParam("key"), c.QueryParam("filename"))
	if err != nil {
		return RespondError(c, h.log, err, "Failed to download image")
	}

	h.log.Debug().
		Str("key", c.QueryParam("key")).
		Str("size", utils.HumanSize(int64(len(d.Body)))).
		Msg("image downloaded")

	headers := c.Response().Header()
	headers.Set(echo.HeaderContentDisposition, d.ContentDisposition)
	headers.Set(echo.HeaderContentLength, strconv.Itoa(len(d.Body)))
	headers.Set("Cache-Control", "no-cache")
	return c.Blob(http.StatusOK, d.ContentType, d.Body)
}

// positiveQueryInt parses a positive integer query parameter. An absent
// parameter yields def; anything else that is not a positive integer fails.
func positiveQueryInt(c echo.Context, name string, def int) (int, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
