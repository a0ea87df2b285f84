package dashboard

import (
	"embed"
	"fmt"
	"io/fs"

	template "github.com/goliatone/go-template"
)

//go:embed templates/*.html templates/partials/*.html
var embeddedTemplates embed.FS

// TemplatesFS returns the embedded dashboard templates rooted at the templates directory.
func TemplatesFS() (fs.FS, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("dashboard: templates fs: %w", err)
	}
	return sub, nil
}

// NewTemplateRenderer creates a go-template renderer backed by the embedded
// dashboard templates. It never touches the working directory.
func NewTemplateRenderer() (Renderer, error) {
	templates, err := TemplatesFS()
	if err != nil {
		return nil, err
	}
	return template.NewRenderer(
		template.WithFS(templates),
		template.WithExtension(".html"),
	)
}
