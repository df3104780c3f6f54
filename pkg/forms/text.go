package forms

import (
	"html"
	"net/url"
	"strings"
)

// TextInput is a single-line string setting.
type TextInput struct {
	baseInput
}

// NewText constructs a text input bound to one store key.
func NewText(key, label string, options ...FieldOption) *TextInput {
	return &TextInput{baseInput: newBase(key, label, DefaultConverter{}, options)}
}

func (i *TextInput) Render(rc RenderContext) string {
	return i.fieldMarkup(rc, i.control("text", rc))
}

func (i *TextInput) Parse(data url.Values) (Delta, error) {
	decoded, err := i.decode(data, i.key)
	if err != nil {
		return nil, err
	}
	return Delta{i.key: decoded}, nil
}

func (b *baseInput) control(inputType string, rc RenderContext) string {
	var builder strings.Builder
	builder.WriteString(`<input`)
	builder.WriteString(attr("type", inputType))
	builder.WriteString(attr("id", "sf-"+b.key))
	builder.WriteString(attr("name", b.key))
	builder.WriteString(attr("value", b.converter.Encode(rc.lookup(b.key))))
	if b.placeholder != "" {
		builder.WriteString(attr("placeholder", b.placeholder))
	}
	builder.WriteString(` class="sf-control">`)
	return builder.String()
}

// PasswordInput renders as a masked text control; the stored value is never
// echoed back into the page source.
type PasswordInput struct {
	baseInput
}

// NewPassword constructs a password input bound to one store key.
func NewPassword(key, label string, options ...FieldOption) *PasswordInput {
	return &PasswordInput{baseInput: newBase(key, label, DefaultConverter{}, options)}
}

func (i *PasswordInput) Render(rc RenderContext) string {
	var builder strings.Builder
	builder.WriteString(`<input`)
	builder.WriteString(attr("type", "password"))
	builder.WriteString(attr("id", "sf-"+i.key))
	builder.WriteString(attr("name", i.key))
	if i.placeholder != "" {
		builder.WriteString(attr("placeholder", i.placeholder))
	}
	builder.WriteString(` class="sf-control">`)
	return i.fieldMarkup(rc, builder.String())
}

func (i *PasswordInput) Parse(data url.Values) (Delta, error) {
	// A blank password submission means "keep the stored secret", not
	// "store the empty string".
	raw, present := data[i.key]
	if !present || strings.TrimSpace(raw[0]) == "" {
		return Delta{}, nil
	}
	decoded, err := i.decode(data, i.key)
	if err != nil {
		return nil, err
	}
	return Delta{i.key: decoded}, nil
}

// TextAreaInput is a multi-line string setting. Pair it with
// TextListConverter for line-delimited collections such as listing keys.
type TextAreaInput struct {
	baseInput
}

// NewTextArea constructs a textarea input bound to one store key.
func NewTextArea(key, label string, options ...FieldOption) *TextAreaInput {
	return &TextAreaInput{baseInput: newBase(key, label, DefaultConverter{}, options)}
}

func (i *TextAreaInput) Render(rc RenderContext) string {
	var builder strings.Builder
	builder.WriteString(`<textarea`)
	builder.WriteString(attr("id", "sf-"+i.key))
	builder.WriteString(attr("name", i.key))
	builder.WriteString(` class="sf-control" rows="4">`)
	builder.WriteString(html.EscapeString(i.converter.Encode(rc.lookup(i.key))))
	builder.WriteString(`</textarea>`)
	return i.fieldMarkup(rc, builder.String())
}

func (i *TextAreaInput) Parse(data url.Values) (Delta, error) {
	decoded, err := i.decode(data, i.key)
	if err != nil {
		return nil, err
	}
	return Delta{i.key: decoded}, nil
}
