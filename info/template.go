package info

import (
	_ "embed"
	"html/template"
)

//go:embed assets/docs.html
var docsHTML []byte

var defaultOpenAPITemplate = template.Must(template.New("openapi-docs").Parse(string(docsHTML)))
