package render

import (
	"context"
	"html"
	"strings"
)

// FragmentRenderer emits only the form element, without document chrome,
// for embedding a settings page into an existing admin layout. The host
// page supplies the heading, stylesheet, and surrounding markup.
type FragmentRenderer struct{}

var _ PageRenderer = (*FragmentRenderer)(nil)

// NewFragment builds a fragment renderer.
func NewFragment() *FragmentRenderer {
	return &FragmentRenderer{}
}

func (r *FragmentRenderer) Name() string        { return "fragment" }
func (r *FragmentRenderer) ContentType() string { return "text/html; charset=utf-8" }

// RenderPage renders the error summary and form element only.
func (r *FragmentRenderer) RenderPage(ctx context.Context, page Page) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	method := page.Method
	if method == "" {
		method = "POST"
	}

	var builder strings.Builder
	if len(page.Errors) > 0 {
		builder.WriteString(`<div class="sf-errors" role="alert">` + "\n")
		builder.WriteString("    <ul>\n")
		for _, message := range page.Errors {
			builder.WriteString(`        <li>`)
			builder.WriteString(html.EscapeString(message))
			builder.WriteString("</li>\n")
		}
		builder.WriteString("    </ul>\n")
		builder.WriteString("</div>\n")
	}

	builder.WriteString(`<form action="`)
	builder.WriteString(html.EscapeString(page.Action))
	builder.WriteString(`" method="`)
	builder.WriteString(html.EscapeString(method))
	builder.WriteString(`">` + "\n")
	builder.WriteString(page.FormHTML)
	builder.WriteString(`    <div class="sf-actions"><button type="submit" class="sf-button">Apply</button></div>` + "\n")
	builder.WriteString("</form>\n")
	return []byte(builder.String()), nil
}
