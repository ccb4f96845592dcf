// Package web renders the application's HTML pages. Templates are embedded
// in the binary; each page template is parsed together with the shared
// layout at startup.
package web

import (
	"bytes"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"path"
	"time"

	"embed"

	"github.com/user/launcher-go/apperror"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData carries the fields every page template expects. Handlers embed it
// in their own page data structs.
type PageData struct {
	Title string
	User  any // *auth.SessionUser when signed in, nil otherwise
}

type errorPageData struct {
	PageData
	Status  int
	Message string
}

var funcMap = template.FuncMap{
	"formatDate": func(t time.Time) string {
		return t.Format("Monday, January 2, 2006")
	},
}

// Renderer holds the parsed page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template against the shared layout.
func NewRenderer() (*Renderer, error) {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, name := range names {
		base := path.Base(name)
		if base == "layout.html" {
			continue
		}
		t, err := template.New(base).Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", name)
		if err != nil {
			return nil, err
		}
		pages[base] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render executes the named page template with the given status and data.
// The template is executed into a buffer first so a render failure can still
// produce a clean 500 instead of a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.pages[name]
	if !ok {
		log.Printf("render: unknown template %q", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		log.Printf("render: executing %q: %v", name, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RenderError maps an error through apperror and renders the error page with
// the corresponding status and user-visible message.
func (r *Renderer) RenderError(w http.ResponseWriter, req *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("something went wrong", err)
	}
	if appErr.StatusCode() >= 500 {
		log.Printf("%s %s: %v", req.Method, req.URL.Path, appErr)
	}
	r.Render(w, appErr.StatusCode(), "error.html", errorPageData{
		PageData: PageData{Title: "Error"},
		Status:   appErr.StatusCode(),
		Message:  appErr.ToResponse().Error,
	})
}
