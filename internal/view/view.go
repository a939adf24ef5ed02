// Package view holds the embedded HTML templates for the public validation
// pages and wires them into the Fiber views engine.
package view

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewEngine returns a views engine rendering the embedded templates.
// Template names are file names without the .html extension.
func NewEngine() (*html.Engine, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, err
	}
	return html.NewFileSystem(http.FS(sub), ".html"), nil
}
