package forms

import (
	"html"
	"net/url"
	"strings"
)

// DropdownInput is a single-choice setting backed by a fixed option set. A
// submission outside the option set is a validation failure.
type DropdownInput struct {
	baseInput
	options []Option
}

// NewDropdown constructs a dropdown bound to one store key.
func NewDropdown(key, label string, choices []Option, options ...FieldOption) *DropdownInput {
	return &DropdownInput{
		baseInput: newBase(key, label, DefaultConverter{}, options),
		options:   choices,
	}
}

// Options returns the static choice set.
func (i *DropdownInput) Options() []Option { return i.options }

// CheckSchema rejects a dropdown with nothing to choose from; every
// submission would fail validation.
func (i *DropdownInput) CheckSchema() error {
	if len(i.options) == 0 {
		return invalidf("dropdown %q has no options", i.key)
	}
	return nil
}

// Selected returns the stored option id, or "" when unset.
func (i *DropdownInput) Selected(values Values) string {
	if values == nil {
		return ""
	}
	value, ok := values[i.key]
	if !ok {
		return ""
	}
	return DefaultConverter{}.Encode(value)
}

func (i *DropdownInput) Render(rc RenderContext) string {
	selected := i.Selected(rc.Values)

	var builder strings.Builder
	builder.WriteString(`<select`)
	builder.WriteString(attr("id", "sf-"+i.key))
	builder.WriteString(attr("name", i.key))
	builder.WriteString(` class="sf-control">` + "\n")
	for _, option := range i.options {
		builder.WriteString(`    <option`)
		builder.WriteString(attr("value", option.ID))
		if option.ID == selected {
			builder.WriteString(` selected`)
		}
		builder.WriteString(`>`)
		builder.WriteString(html.EscapeString(option.Label))
		builder.WriteString("</option>\n")
	}
	builder.WriteString(`</select>`)
	return i.fieldMarkup(rc, builder.String())
}

func (i *DropdownInput) Parse(data url.Values) (Delta, error) {
	raw, present := data[i.key]
	if !present || len(raw) == 0 {
		return nil, &ValidationError{Key: i.key, Message: "no value submitted"}
	}
	if _, ok := optionIDs(i.options)[raw[0]]; !ok {
		return nil, &ValidationError{Key: i.key, Message: "invalid value: " + raw[0]}
	}
	return Delta{i.key: raw[0]}, nil
}

// MultiCheckboxInput is a choice-set setting rendered as one checkbox per
// option; the stored value is the set of selected option ids. Submitting no
// boxes stores the empty set, a valid value rather than a deletion.
type MultiCheckboxInput struct {
	baseInput
	options []Option
}

// NewMultiCheckbox constructs a multi-select checkbox group bound to one
// store key.
func NewMultiCheckbox(key, label string, choices []Option, options ...FieldOption) *MultiCheckboxInput {
	return &MultiCheckboxInput{
		baseInput: newBase(key, label, DefaultConverter{}, options),
		options:   choices,
	}
}

// Options returns the static choice set.
func (i *MultiCheckboxInput) Options() []Option { return i.options }

// Selected returns the stored selection as a string set.
func (i *MultiCheckboxInput) Selected(values Values) []string {
	if values == nil {
		return nil
	}
	return stringSet(values[i.key])
}

func (i *MultiCheckboxInput) Render(rc RenderContext) string {
	selected := make(map[string]struct{})
	for _, id := range i.Selected(rc.Values) {
		selected[id] = struct{}{}
	}

	var builder strings.Builder
	builder.WriteString(`<div class="sf-checkgroup">` + "\n")
	for _, option := range i.options {
		builder.WriteString(`    <div class="sf-check"><input`)
		builder.WriteString(attr("type", "checkbox"))
		builder.WriteString(attr("id", "sf-"+i.key+"-"+option.ID))
		builder.WriteString(attr("name", i.key))
		builder.WriteString(attr("value", option.ID))
		if _, ok := selected[option.ID]; ok {
			builder.WriteString(` checked`)
		}
		builder.WriteString(`><label for="sf-`)
		builder.WriteString(html.EscapeString(i.key + "-" + option.ID))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(option.Label))
		builder.WriteString("</label></div>\n")
	}
	builder.WriteString(`</div>`)
	return i.fieldMarkup(rc, builder.String())
}

func (i *MultiCheckboxInput) Parse(data url.Values) (Delta, error) {
	ids := optionIDs(i.options)
	selected := make([]string, 0, len(data[i.key]))
	for _, raw := range data[i.key] {
		if _, ok := ids[raw]; !ok {
			return nil, &ValidationError{Key: i.key, Message: "invalid value: " + raw}
		}
		selected = append(selected, raw)
	}
	return Delta{i.key: selected}, nil
}

// stringSet normalises a stored selection into a string slice. JSON round
// trips deliver []any; writers in this module produce []string.
func stringSet(stored any) []string {
	switch v := stored.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, DefaultConverter{}.Encode(item))
		}
		return out
	default:
		return nil
	}
}
