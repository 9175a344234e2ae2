// Package views holds the server-rendered HTML pages.
package views

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every page; names are the file base names.
func Templates() *template.Template {
	return template.Must(template.ParseFS(files, "templates/*.html"))
}
