package forms

import (
	"html"
	"net/url"
	"strings"
)

// Input is one editable setting (or composite of settings) on the page. The
// variant set is closed: every concrete implementation lives in this package
// and is selected at schema-construction time.
type Input interface {
	// Keys lists the store keys this input owns. Keys are globally unique
	// across a schema; duplicates are a construction error.
	Keys() []string
	// Render produces the widget markup for the current store state,
	// embedding the key name(s) for resubmission.
	Render(rc RenderContext) string
	// Parse extracts this input's keys from the decoded submission. The
	// returned Delta contains decoded values or Delete markers; errors are
	// *ValidationError or ValidationErrors.
	Parse(data url.Values) (Delta, error)
}

// RenderContext carries the store snapshot plus any per-field validation
// messages from a rejected submission.
type RenderContext struct {
	Values Values
	Errors map[string]string
}

func (rc RenderContext) lookup(key string) any {
	if rc.Values == nil {
		return nil
	}
	value, ok := rc.Values[key]
	if !ok {
		return nil
	}
	return value
}

func (rc RenderContext) errorFor(key string) string {
	if rc.Errors == nil {
		return ""
	}
	return rc.Errors[key]
}

// FieldOption customises a single input at construction time.
type FieldOption func(*baseInput)

// WithConverter overrides the input's default converter.
func WithConverter(converter Converter) FieldOption {
	return func(b *baseInput) {
		if converter != nil {
			b.converter = converter
		}
	}
}

// WithInfoText attaches help markup shown under the widget. Limited inline
// HTML (links, emphasis, code) survives sanitisation; everything else is
// stripped.
func WithInfoText(text string) FieldOption {
	return func(b *baseInput) {
		b.infoText = text
	}
}

// WithAppend renders a unit hint after the control, e.g. "dB" or "frames per
// second".
func WithAppend(unit string) FieldOption {
	return func(b *baseInput) {
		b.appendText = unit
	}
}

// WithPlaceholder sets the control's placeholder attribute.
func WithPlaceholder(placeholder string) FieldOption {
	return func(b *baseInput) {
		b.placeholder = placeholder
	}
}

type baseInput struct {
	key         string
	label       string
	infoText    string
	appendText  string
	placeholder string
	converter   Converter
}

func newBase(key, label string, converter Converter, options []FieldOption) baseInput {
	b := baseInput{
		key:       strings.TrimSpace(key),
		label:     label,
		converter: converter,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&b)
	}
	return b
}

// Key returns the primary store key.
func (b *baseInput) Key() string { return b.key }

// Label returns the human-readable field label.
func (b *baseInput) Label() string { return b.label }

func (b *baseInput) Keys() []string { return []string{b.key} }

// Display encodes the current stored value for single-string widgets and
// terminal prompts.
func (b *baseInput) Display(values Values) string {
	var stored any
	if values != nil {
		if v, ok := values[b.key]; ok {
			stored = v
		}
	}
	return b.converter.Encode(stored)
}

func (b *baseInput) decode(data url.Values, key string) (any, error) {
	raw, present := data[key]
	if !present {
		raw = nil
	}
	decoded, err := b.converter.Decode(raw)
	if err != nil {
		return nil, keyed(key, err)
	}
	return decoded, nil
}

// fieldMarkup wraps a control in the shared field chrome: label, control,
// optional unit, sanitised info text, and the validation message when the
// submission was rejected.
func (b *baseInput) fieldMarkup(rc RenderContext, control string) string {
	var builder strings.Builder
	builder.Grow(len(control) + 256)

	builder.WriteString(`<div class="sf-field" data-key="`)
	builder.WriteString(html.EscapeString(b.key))
	builder.WriteString("\">\n")

	if strings.TrimSpace(b.label) != "" {
		builder.WriteString(`    <label for="sf-`)
		builder.WriteString(html.EscapeString(b.key))
		builder.WriteString(`" class="sf-label">`)
		builder.WriteString(html.EscapeString(b.label))
		builder.WriteString("</label>\n")
	}

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString("    ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	if unit := strings.TrimSpace(b.appendText); unit != "" {
		builder.WriteString(`    <span class="sf-append">`)
		builder.WriteString(html.EscapeString(unit))
		builder.WriteString("</span>\n")
	}

	if info := sanitizeInfoText(b.infoText); info != "" {
		builder.WriteString(`    <small class="sf-info">`)
		builder.WriteString(info)
		builder.WriteString("</small>\n")
	}

	if message := rc.errorFor(b.key); message != "" {
		builder.WriteString(`    <small class="sf-error">`)
		builder.WriteString(html.EscapeString(message))
		builder.WriteString("</small>\n")
	}

	builder.WriteString("</div>\n")
	return builder.String()
}

func attr(name, value string) string {
	return ` ` + name + `="` + html.EscapeString(value) + `"`
}
