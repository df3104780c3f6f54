package forms

import (
	"html"
	"net/url"
	"strings"
)

// CheckboxInput is a boolean setting. Browsers submit nothing for an
// unchecked box, so absence decodes to Delete: the key is removed rather
// than stored as false.
type CheckboxInput struct {
	baseInput
	checkboxText string
}

// NewCheckbox constructs a checkbox bound to one store key. checkboxText is
// the clickable caption next to the box; label is the row label and may be
// empty.
func NewCheckbox(key, label, checkboxText string, options ...FieldOption) *CheckboxInput {
	return &CheckboxInput{
		baseInput:    newBase(key, label, DefaultConverter{}, options),
		checkboxText: checkboxText,
	}
}

// Checked reports whether the stored value renders as a ticked box.
func (i *CheckboxInput) Checked(values Values) bool {
	if values == nil {
		return false
	}
	value, ok := values[i.key]
	if !ok {
		return false
	}
	checked, ok := value.(bool)
	return ok && checked
}

// CheckboxText returns the caption rendered next to the box.
func (i *CheckboxInput) CheckboxText() string { return i.checkboxText }

func (i *CheckboxInput) Render(rc RenderContext) string {
	var builder strings.Builder
	builder.WriteString(`<div class="sf-check">`)
	builder.WriteString(`<input`)
	builder.WriteString(attr("type", "checkbox"))
	builder.WriteString(attr("id", "sf-"+i.key))
	builder.WriteString(attr("name", i.key))
	builder.WriteString(attr("value", "on"))
	if i.Checked(rc.Values) {
		builder.WriteString(` checked`)
	}
	builder.WriteString(`>`)
	if i.checkboxText != "" {
		builder.WriteString(`<label for="sf-`)
		builder.WriteString(html.EscapeString(i.key))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(i.checkboxText))
		builder.WriteString(`</label>`)
	}
	builder.WriteString(`</div>`)
	return i.fieldMarkup(rc, builder.String())
}

func (i *CheckboxInput) Parse(data url.Values) (Delta, error) {
	if _, present := data[i.key]; present {
		return Delta{i.key: true}, nil
	}
	return Delta{i.key: Delete}, nil
}
