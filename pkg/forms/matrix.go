package forms

import (
	"html"
	"net/url"
	"strings"
)

// CheckboxMatrixInput is a two-dimensional choice set: a grid of checkboxes
// whose cell ids are the concatenation of row and column ids (e.g. mode "A"
// with period "30" gives "A30"). The stored value is the set of enabled cell
// ids;
// like MultiCheckboxInput, an empty submission stores the empty set.
type CheckboxMatrixInput struct {
	baseInput
	rows []Option
	cols []Option
}

// NewCheckboxMatrix constructs a checkbox matrix bound to one store key.
func NewCheckboxMatrix(key, label string, rows, cols []Option, options ...FieldOption) *CheckboxMatrixInput {
	return &CheckboxMatrixInput{
		baseInput: newBase(key, label, DefaultConverter{}, options),
		rows:      rows,
		cols:      cols,
	}
}

// Cells returns every valid cell id in row-major order.
func (i *CheckboxMatrixInput) Cells() []string {
	cells := make([]string, 0, len(i.rows)*len(i.cols))
	for _, row := range i.rows {
		for _, col := range i.cols {
			cells = append(cells, row.ID+col.ID)
		}
	}
	return cells
}

// Selected returns the stored selection as a string set.
func (i *CheckboxMatrixInput) Selected(values Values) []string {
	if values == nil {
		return nil
	}
	return stringSet(values[i.key])
}

func (i *CheckboxMatrixInput) Render(rc RenderContext) string {
	selected := make(map[string]struct{})
	for _, id := range i.Selected(rc.Values) {
		selected[id] = struct{}{}
	}

	var builder strings.Builder
	builder.WriteString(`<table class="sf-matrix">` + "\n")
	builder.WriteString(`    <tr><th></th>`)
	for _, col := range i.cols {
		builder.WriteString(`<th>`)
		builder.WriteString(html.EscapeString(col.Label))
		builder.WriteString(`</th>`)
	}
	builder.WriteString("</tr>\n")
	for _, row := range i.rows {
		builder.WriteString(`    <tr><th>`)
		builder.WriteString(html.EscapeString(row.Label))
		builder.WriteString(`</th>`)
		for _, col := range i.cols {
			cell := row.ID + col.ID
			builder.WriteString(`<td><input`)
			builder.WriteString(attr("type", "checkbox"))
			builder.WriteString(attr("name", i.key))
			builder.WriteString(attr("value", cell))
			if _, ok := selected[cell]; ok {
				builder.WriteString(` checked`)
			}
			builder.WriteString(`></td>`)
		}
		builder.WriteString("</tr>\n")
	}
	builder.WriteString(`</table>`)
	return i.fieldMarkup(rc, builder.String())
}

func (i *CheckboxMatrixInput) Parse(data url.Values) (Delta, error) {
	valid := make(map[string]struct{})
	for _, cell := range i.Cells() {
		valid[cell] = struct{}{}
	}
	selected := make([]string, 0, len(data[i.key]))
	for _, raw := range data[i.key] {
		if _, ok := valid[raw]; !ok {
			return nil, &ValidationError{Key: i.key, Message: "invalid combination: " + raw}
		}
		selected = append(selected, raw)
	}
	return Delta{i.key: selected}, nil
}
