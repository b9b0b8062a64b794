package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateCache holds parsed page templates, each combined with the shared
// layout.
type TemplateCache struct {
	cache map[string]*template.Template
	mu    sync.RWMutex
	funcs template.FuncMap
}

func NewTemplateCache() *TemplateCache {
	return &TemplateCache{
		cache: make(map[string]*template.Template),
		funcs: template.FuncMap{
			"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
			"add":   func(a, b int) int { return a + b },
		},
	}
}

// Load parses every embedded page template against the layout.
func (tc *TemplateCache) Load() error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return err
	}

	for _, page := range pages {
		name := filepath.Base(page)
		if name == "layout.html" {
			continue
		}
		tmpl, err := template.New(name).Funcs(tc.funcs).ParseFS(templateFS, "templates/layout.html", page)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", page, err)
		}
		tc.cache[name] = tmpl
	}

	return nil
}

func (tc *TemplateCache) Get(name string) *template.Template {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.cache[name]
}

// Render executes a cached page template inside the shared layout.
func (tc *TemplateCache) Render(w io.Writer, name string, data any) error {
	tmpl := tc.Get(name)
	if tmpl == nil {
		return fmt.Errorf("template %s not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// RenderDocument executes a standalone document template (no layout), such
// as the print-ready invoice.
func (tc *TemplateCache) RenderDocument(w io.Writer, name string, data any) error {
	tmpl := tc.Get(name)
	if tmpl == nil {
		return fmt.Errorf("template %s not found", name)
	}
	return tmpl.ExecuteTemplate(w, "document", data)
}
