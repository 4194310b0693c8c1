package renderer

import (
	"embed"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var templateFS embed.FS

// Pages maps a template name to its page file under templates/pages.
var Pages = map[string]string{
	"home":          "home.html",
	"privacy":       "privacy.html",
	"terms":         "terms.html",
	"data_deletion": "data_deletion.html",
	"share":         "share.html",
	"gallery":       "gallery.html",
}

// TemplateRenderer implements echo.Renderer
type TemplateRenderer struct {
	Templates map[string]*template.Template
}

// New creates a new TemplateRenderer with every page parsed against the base layout
func New() *TemplateRenderer {
	r := &TemplateRenderer{
		Templates: make(map[string]*template.Template, len(Pages)),
	}
	for name, file := range Pages {
		r.Templates[name] = template.Must(template.ParseFS(templateFS,
			"templates/layouts/base.html",
			"templates/pages/"+file,
		))
	}
	return r
}

// Render executes the "base" block of the named page
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.Templates[name]
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Template not found: "+name)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}
