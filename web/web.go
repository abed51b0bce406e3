// Package web holds the embedded HTML templates and static assets and the
// renderer the HTTP handlers draw pages through.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html static/*
var content embed.FS

// Pages renderable through the Renderer. Each is a standalone template set
// built from base.html plus its own content file.
var pageFiles = map[string]string{
	"home":            "home.html",
	"about":           "about.html",
	"portfolio":       "portfolio.html",
	"services":        "services.html",
	"ai_experiments":  "ai_experiments.html",
	"blog":            "blog.html",
	"blog_post":       "blog_post.html",
	"contact":         "contact.html",
	"admin_login":     "admin_login.html",
	"admin_dashboard": "admin_dashboard.html",
	"not_found":       "not_found.html",
}

var funcs = template.FuncMap{
	"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	"add":      func(a, b int) int { return a + b },
	"sub":      func(a, b int) int { return a - b },
}

// Renderer executes named page templates against the shared base layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template set out of the embedded FS.
func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageFiles))
	for name, file := range pageFiles {
		tpl, err := template.New("base.html").Funcs(funcs).ParseFS(content,
			"templates/base.html", "templates/"+file)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", file, err)
		}
		pages[name] = tpl
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page with the given status and data. Output is
// buffered so a template failure never leaks a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return fmt.Errorf("rendering %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// StaticHandler serves the embedded static assets under /static/.
func StaticHandler() (http.Handler, error) {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		return nil, fmt.Errorf("loading embedded static assets: %w", err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub))), nil
}
