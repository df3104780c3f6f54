// Package settingsforms re-exports the common surface of the module so
// simple callers can declare a page, back it with a store, and serve it
// from a single import.
package settingsforms

import (
	"net/http"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-settingsforms/pkg/forms"
	"github.com/goliatone/go-settingsforms/pkg/render"
	"github.com/goliatone/go-settingsforms/pkg/schema"
	"github.com/goliatone/go-settingsforms/pkg/settings"
	"github.com/goliatone/go-settingsforms/pkg/store"
)

// Delete marks a key for removal in a parsed submission delta.
var Delete = forms.Delete

// Input is the contract every form input satisfies.
type Input = forms.Input

// Converter translates between stored values and their form encoding.
type Converter = forms.Converter

// Option is a static {id, label} choice for dropdowns and multi-selects.
type Option = forms.Option

// ValidationErrors is the collected field failures of a rejected submission.
type ValidationErrors = forms.ValidationErrors

// Schema is the static definition of one settings page.
type Schema = schema.Schema

// Section groups inputs under a title.
type Section = schema.Section

// Store is the persistent key-value backend a page reads from and commits to.
type Store = store.Store

// Controller serves one settings page backed by one store.
type Controller = settings.Controller

// NewSection groups inputs under a title in declaration order.
func NewSection(title string, inputs ...forms.Input) *schema.Section {
	return schema.NewSection(title, inputs...)
}

// NewSchema builds a page definition, rejecting duplicate store keys.
func NewSchema(sections ...*schema.Section) (*schema.Schema, error) {
	return schema.New(sections...)
}

// NewController wires a schema to a store with the default HTML renderer.
func NewController(pageSchema *schema.Schema, st store.Store, opts ...settings.Option) (*settings.Controller, error) {
	return settings.New(pageSchema, st, opts...)
}

// Handler serves a controller over HTTP with post-redirect-get semantics.
func Handler(controller *settings.Controller, opts ...settings.HandlerOption) http.Handler {
	return settings.Handler(controller, opts...)
}

// WithTheme builds a controller option applying a theme configuration to
// the default HTML renderer.
func WithTheme(cfg *theme.RendererConfig) (settings.Option, error) {
	renderer, err := render.NewHTML(render.WithTheme(cfg))
	if err != nil {
		return nil, err
	}
	return settings.WithRenderer(renderer), nil
}
