// Package views renders the server-side HTML pages from embedded
// templates through the gofiber html engine.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"
)

//go:embed templates
var templates embed.FS

// Layout wraps every page.
const Layout = "layouts/main"

// Renderer executes named page templates inside the main layout.
type Renderer struct {
	engine *html.Engine
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("open templates: %w", err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("formatDate", formatDate)
	engine.AddFunc("formatMoney", formatMoney)
	engine.AddFunc("add", func(a, b int) int { return a + b })
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return &Renderer{engine: engine}, nil
}

// Render writes page with the given status. The page is executed into a
// buffer first so a template failure never leaves a half-written body.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data map[string]any) error {
	var buf bytes.Buffer
	if err := r.engine.Render(&buf, page, data, Layout); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
