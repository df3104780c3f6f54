// Package template defines the seam between page renderers and the
// underlying template engine, mirroring the github.com/goliatone/go-template
// contract so engines can be swapped without touching render code.
package template

import (
	"io"
)

// TemplateRenderer is the engine contract page renderers rely on.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
