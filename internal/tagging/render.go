package tagging

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Renderer emits tagging markup blocks from typed payloads. Templates are
// embedded at build time; unknown template names are a programming error.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render writes the named template with the given payload. The payload
// types in types.go are the only valid inputs per template.
func (r *Renderer) Render(w io.Writer, name string, data interface{}) error {
	if err := r.templates.ExecuteTemplate(w, name+".tmpl", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
