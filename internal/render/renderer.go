package render

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"pdf-upload-form/internal/domain"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Renderer draws form views as HTML.
type Renderer struct {
	page *template.Template
}

// NewRenderer parses the embedded page template.
func NewRenderer() (*Renderer, error) {
	page, err := template.ParseFS(templateFiles, "templates/form.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{page: page}, nil
}

// Render writes the page for v to w. Nothing is written if the template fails.
func (r *Renderer) Render(w io.Writer, v domain.FormView) error {
	var buf bytes.Buffer
	if err := r.page.ExecuteTemplate(&buf, "form.html", v); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
