package forms

import (
	"net/url"
	"strings"
)

// NumberInput is a whole-number setting.
type NumberInput struct {
	baseInput
}

// NewNumber constructs a numeric input bound to one store key. Wrap the
// converter with OptionalConverter to let a blank submission clear the key.
func NewNumber(key, label string, options ...FieldOption) *NumberInput {
	return &NumberInput{baseInput: newBase(key, label, IntConverter{}, options)}
}

func (i *NumberInput) Render(rc RenderContext) string {
	return i.fieldMarkup(rc, i.numericControl(rc, ""))
}

func (i *NumberInput) Parse(data url.Values) (Delta, error) {
	decoded, err := i.decode(data, i.key)
	if err != nil {
		return nil, err
	}
	return Delta{i.key: decoded}, nil
}

// FloatInput is a floating-point setting.
type FloatInput struct {
	baseInput
}

// NewFloat constructs a float input bound to one store key.
func NewFloat(key, label string, options ...FieldOption) *FloatInput {
	return &FloatInput{baseInput: newBase(key, label, FloatConverter{}, options)}
}

func (i *FloatInput) Render(rc RenderContext) string {
	return i.fieldMarkup(rc, i.numericControl(rc, "any"))
}

func (i *FloatInput) Parse(data url.Values) (Delta, error) {
	decoded, err := i.decode(data, i.key)
	if err != nil {
		return nil, err
	}
	return Delta{i.key: decoded}, nil
}

func (b *baseInput) numericControl(rc RenderContext, step string) string {
	var builder strings.Builder
	builder.WriteString(`<input`)
	builder.WriteString(attr("type", "number"))
	builder.WriteString(attr("id", "sf-"+b.key))
	builder.WriteString(attr("name", b.key))
	builder.WriteString(attr("value", b.converter.Encode(rc.lookup(b.key))))
	if step != "" {
		builder.WriteString(attr("step", step))
	}
	builder.WriteString(` class="sf-control">`)
	return builder.String()
}
