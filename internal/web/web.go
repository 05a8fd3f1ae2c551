// Package web holds the server-rendered pages.
package web

import (
	"embed"
	"html/template"
	"io"
	"strings"
	"time"

	"feedback-prioritizer/internal/models"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"title": func(c models.Category) string {
		s := string(c)
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"stamp": func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04:05")
	},
	"lower": strings.ToLower,
}

type Renderer struct {
	t *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{t: t}, nil
}

// Render executes the named page (file name, e.g. "dashboard.html").
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	return r.t.ExecuteTemplate(w, page, data)
}
