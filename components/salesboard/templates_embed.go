package salesboard

import (
	"embed"
	"io/fs"

	goerrors "github.com/goliatone/go-errors"
	template "github.com/goliatone/go-template"
)

//go:embed templates/*.html templates/**/*.html
var embeddedTemplates embed.FS

// TemplatesFS returns the embedded templates rooted at the templates
// directory, so includes resolve as "partials/header.html".
func TemplatesFS() (fs.FS, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "salesboard: open embedded templates")
	}
	return sub, nil
}

// NewTemplateRenderer creates a go-template renderer backed by the embedded
// templates. It never reads from the working directory.
func NewTemplateRenderer() (Renderer, error) {
	sub, err := TemplatesFS()
	if err != nil {
		return nil, err
	}
	return template.NewRenderer(
		template.WithFS(sub),
		template.WithExtension(".html"),
	)
}
