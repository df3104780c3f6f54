// Package settings ties a schema, a store, and a page renderer together
// into the request-level operations of one settings page: render the
// current state, and apply a submitted form atomically.
package settings

import (
	"context"
	"fmt"

	"github.com/goliatone/go-settingsforms/pkg/forms"
	"github.com/goliatone/go-settingsforms/pkg/render"
	"github.com/goliatone/go-settingsforms/pkg/schema"
	"github.com/goliatone/go-settingsforms/pkg/store"
)

// Option configures a Controller.
type Option func(*Controller)

// WithTitle sets the page heading. Defaults to "Settings".
func WithTitle(title string) Option {
	return func(c *Controller) {
		if title != "" {
			c.title = title
		}
	}
}

// WithAction sets the form's submit target. Defaults to "", submitting to
// the current URL.
func WithAction(action string) Option {
	return func(c *Controller) {
		c.action = action
	}
}

// WithRenderer replaces the default HTML page renderer.
func WithRenderer(renderer render.PageRenderer) Option {
	return func(c *Controller) {
		if renderer != nil {
			c.renderer = renderer
		}
	}
}

// Controller serves one settings page backed by one store.
type Controller struct {
	schema   *schema.Schema
	store    store.Store
	renderer render.PageRenderer
	title    string
	action   string
}

// New wires a schema to a store. Without WithRenderer the page renders
// through the embedded HTML templates.
func New(pageSchema *schema.Schema, st store.Store, opts ...Option) (*Controller, error) {
	if pageSchema == nil {
		return nil, fmt.Errorf("settings: schema is required")
	}
	if st == nil {
		return nil, fmt.Errorf("settings: store is required")
	}

	c := &Controller{
		schema: pageSchema,
		store:  st,
		title:  "Settings",
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if c.renderer == nil {
		renderer, err := render.NewHTML()
		if err != nil {
			return nil, err
		}
		c.renderer = renderer
	}
	return c, nil
}

// Renderer exposes the page renderer, mainly so HTTP handlers can set the
// response content type.
func (c *Controller) Renderer() render.PageRenderer { return c.renderer }

// RenderPage renders the page from the store's current state.
func (c *Controller) RenderPage(ctx context.Context) ([]byte, error) {
	rc := forms.RenderContext{Values: c.store.Snapshot()}
	return c.renderPage(ctx, rc, nil)
}

// RenderRejected re-renders the page after a rejected submission. The store
// still holds the pre-submission state; field errors are attached to the
// inputs that produced them and the flat message list goes to the page
// header.
func (c *Controller) RenderRejected(ctx context.Context, verrs forms.ValidationErrors) ([]byte, error) {
	rc := forms.RenderContext{
		Values: c.store.Snapshot(),
		Errors: verrs.ByKey(),
	}
	return c.renderPage(ctx, rc, verrs.Messages())
}

func (c *Controller) renderPage(ctx context.Context, rc forms.RenderContext, pageErrors []string) ([]byte, error) {
	page := render.Page{
		Title:    c.title,
		FormHTML: c.schema.Render(rc),
		Errors:   pageErrors,
		Action:   c.action,
		Method:   "POST",
	}
	return c.renderer.RenderPage(ctx, page)
}

// Submit parses a URL-encoded form body and, when every field validates,
// commits the resulting delta in one store update. A non-empty
// ValidationErrors return means the store was not touched at all. The error
// return carries decode and storage failures.
func (c *Controller) Submit(ctx context.Context, body string) (forms.ValidationErrors, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := DecodeForm(body)
	if err != nil {
		return nil, err
	}

	delta, verrs := c.schema.Parse(data)
	if len(verrs) > 0 {
		return verrs, nil
	}

	err = c.store.Update(func(tx store.Tx) error {
		for key, value := range delta {
			if _, isDelete := value.(forms.DeleteMarker); isDelete {
				tx.Delete(key)
			} else {
				tx.Set(key, value)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("settings: commit submission: %w", err)
	}
	return nil, nil
}
