package renderer

import (
	"bytes"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/damacus/snapsplit/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_RenderUnknownTemplate(t *testing.T) {
	r := &TemplateRenderer{
		Templates: make(map[string]*template.Template),
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := r.Render(rec, "nonexistent", nil, c)

	assert.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	assert.Contains(t, httpErr.Message, "Template not found")
}

func TestNew_ParsesEveryPage(t *testing.T) {
	r := New()

	assert.Len(t, r.Templates, len(Pages))
	for name := range Pages {
		assert.Contains(t, r.Templates, name)
	}
}

func TestTemplateRenderer_RendersPagesWithLayout(t *testing.T) {
	r := New()
	e := echo.New()
	data := models.PageData{AppStoreURL: "https://apps.example/snap", PageSize: 25}

	tests := map[string]string{
		"home":          "Split bills with friends",
		"privacy":       "Privacy Policy",
		"terms":         "Terms and Conditions",
		"data_deletion": "Data Deletion Request",
		"share":         "Someone shared a bill with you",
		"gallery":       "Photo Gallery",
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

			err := r.Render(&buf, name, data, c)

			require.NoError(t, err)
			assert.Contains(t, buf.String(), want)
			assert.Contains(t, buf.String(), "<!DOCTYPE html>")
			assert.Contains(t, buf.String(), `href="/privacy"`)
		})
	}
}

func TestShareTemplate_DataIndicator(t *testing.T) {
	r := New()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/share", nil), httptest.NewRecorder())

	var without, with bytes.Buffer
	require.NoError(t, r.Render(&without, "share", models.PageData{AppStoreURL: "https://apps.example/snap"}, c))
	require.NoError(t, r.Render(&with, "share", models.PageData{AppStoreURL: "https://apps.example/snap", HasData: true}, c))

	assert.NotContains(t, without.String(), "Shared bill data received")
	assert.Contains(t, with.String(), "Shared bill data received")
	assert.Contains(t, with.String(), "https://apps.example/snap")
}

func TestGalleryTemplate_EmbedsPageSize(t *testing.T) {
	r := New()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/gallery", nil), httptest.NewRecorder())

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "gallery", models.PageData{PageSize: 25}, c))

	assert.Regexp(t, `var pageSize = \s*25\s*;`, buf.String())
}
