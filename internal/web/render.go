package web

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/roach88/healthrec/internal/form"
	"github.com/roach88/healthrec/internal/record"
)

//go:embed templates/*.html
var templateFS embed.FS

// templateRenderer adapts html/template to echo.Renderer.
type templateRenderer struct {
	templates *template.Template
}

func newTemplateRenderer() (*templateRenderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &templateRenderer{templates: t}, nil
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// windowData is everything the window template shows.
type windowData struct {
	Name, Code, Details, Query string

	Columns  []string
	Rows     []record.HealthRecord
	Selected int
	Notices  []form.Notice
}

func snapshot(f *form.Form) windowData {
	selected := -1
	if idx, ok := f.Selected(); ok {
		selected = idx
	}
	return windowData{
		Name:     f.Name,
		Code:     f.Code,
		Details:  f.Details,
		Query:    f.Query,
		Columns:  form.Columns,
		Rows:     f.Rows(),
		Selected: selected,
		Notices:  f.Notices(),
	}
}
