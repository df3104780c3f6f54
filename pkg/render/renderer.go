// Package render turns assembled section markup into a complete settings
// page. The core hands it pre-rendered widget HTML; page chrome, theming,
// and content negotiation live here, behind a small renderer registry.
package render

import "context"

// Page is everything a renderer needs to produce the final document.
type Page struct {
	// Title is the page heading.
	Title string
	// FormHTML is the concatenated section markup produced by the schema.
	FormHTML string
	// Errors carries the flattened validation messages of a rejected
	// submission, in submission order.
	Errors []string
	// Action is the form's submit target; Method defaults to POST.
	Action string
	Method string
}

// PageRenderer converts a Page into a byte representation.
type PageRenderer interface {
	Name() string
	ContentType() string
	RenderPage(ctx context.Context, page Page) ([]byte, error)
}
