// Package web holds the embedded page templates and the echo renderer that
// serves them.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var files embed.FS

const layoutFile = "templates/layout.html"

// pages maps a template name to its file; each is parsed together with the layout.
var pages = map[string]string{
	"login":     "templates/login.html",
	"register":  "templates/register.html",
	"forgot":    "templates/forgot.html",
	"dashboard": "templates/dashboard.html",
	"redirect":  "templates/redirect.html",
}

var funcs = template.FuncMap{
	"initial": func(s string) string {
		s = strings.TrimSpace(s)
		if s == "" {
			return "?"
		}
		return strings.ToUpper(string([]rune(s)[:1]))
	},
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page once.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for name, file := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(files, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Render executes the layout of the named page.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
