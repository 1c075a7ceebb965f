// Package web holds the HTML templates and static assets.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/meur/dexforge/internal/dex"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded static assets rooted at static/
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var funcs = template.FuncMap{
	"title":     dex.DisplayName,
	"padID":     func(id int) string { return fmt.Sprintf("#%03d", id) },
	"upper":     strings.ToUpper,
	"spaced":    func(s string) string { return strings.ReplaceAll(s, "-", " ") },
	"method":    dex.MethodLabel,
	"damage":    dex.DamageClassLabel,
	"typeClass": func(t string) string { return "type-" + t },
}

// Templates renders named pages
type Templates struct {
	pages map[string]*template.Template
}

var pageNames = []string{"list", "detail", "search", "move", "error"}

// Parse compiles every page against the shared layout
func Parse() (*Templates, error) {
	t := &Templates{pages: make(map[string]*template.Template)}
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		t.pages[name] = tmpl
	}
	return t, nil
}

// Render executes a page into w. Output is buffered so a template error
// never produces a half-written page.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("rendering %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Meta is the head metadata of a page
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Image       string
	AppLinks    []AppLink
}

// AppLink is a platform deep-link hint (<meta property="al:...">)
type AppLink struct {
	Property string
	Content  string
}
