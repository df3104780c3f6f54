// Package schema assembles typed inputs into the ordered, titled sections
// that make up a settings page, and guards the page-wide invariants that
// must hold before any request is served.
package schema

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/goliatone/go-settingsforms/pkg/forms"
)

// SchemaError reports a defect in the page definition itself: duplicate
// store keys, empty sections, and similar construction-time mistakes. It is
// never produced while handling a request.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "schema: " + e.Reason
}

// Section is a named, ordered group of inputs. It holds no state of its own;
// rendering and parsing delegate to the contained inputs.
type Section struct {
	title  string
	inputs []forms.Input
}

// NewSection groups inputs under a title in declaration order.
func NewSection(title string, inputs ...forms.Input) *Section {
	return &Section{title: title, inputs: inputs}
}

// Title returns the section heading.
func (s *Section) Title() string { return s.title }

// Inputs returns the contained inputs in declaration order.
func (s *Section) Inputs() []forms.Input { return s.inputs }

// Render concatenates the widget markup of every input, in order, under one
// titled container.
func (s *Section) Render(rc forms.RenderContext) string {
	var builder strings.Builder
	builder.WriteString(`<div class="sf-section">` + "\n")
	builder.WriteString(`<h3 class="sf-section-title">`)
	builder.WriteString(html.EscapeString(s.title))
	builder.WriteString("</h3>\n")
	for _, input := range s.inputs {
		builder.WriteString(input.Render(rc))
	}
	builder.WriteString("</div>\n")
	return builder.String()
}

// Parse merges every input's parse result into one delta. Input keys are
// disjoint by construction, so merging cannot conflict. Validation failures
// are collected, not short-circuited.
func (s *Section) Parse(data url.Values) (forms.Delta, forms.ValidationErrors) {
	delta := make(forms.Delta)
	var errs forms.ValidationErrors
	for _, input := range s.inputs {
		partial, err := input.Parse(data)
		if err != nil {
			errs = append(errs, collectValidation(err)...)
			continue
		}
		for key, value := range partial {
			delta[key] = value
		}
	}
	return delta, errs
}

// Schema is the static, ordered list of sections defining one settings page.
type Schema struct {
	sections []*Section
}

// schemaChecker lets an input veto page construction, e.g. a dropdown with
// an empty option set.
type schemaChecker interface {
	CheckSchema() error
}

// New builds a Schema, failing fast with a *SchemaError when two inputs
// anywhere on the page claim the same store key or an input's own
// construction check fails.
func New(sections ...*Section) (*Schema, error) {
	seen := make(map[string]struct{})
	for _, section := range sections {
		for _, input := range section.Inputs() {
			if checker, ok := input.(schemaChecker); ok {
				if err := checker.CheckSchema(); err != nil {
					return nil, &SchemaError{Reason: err.Error()}
				}
			}
			for _, key := range input.Keys() {
				if strings.TrimSpace(key) == "" {
					return nil, &SchemaError{Reason: fmt.Sprintf("section %q contains an input with an empty key", section.Title())}
				}
				if _, dup := seen[key]; dup {
					return nil, &SchemaError{Reason: fmt.Sprintf("duplicate store key %q", key)}
				}
				seen[key] = struct{}{}
			}
		}
	}
	return &Schema{sections: sections}, nil
}

// MustNew panics on schema construction failure. Useful for package-level
// schema declarations.
func MustNew(sections ...*Section) *Schema {
	schema, err := New(sections...)
	if err != nil {
		panic(err)
	}
	return schema
}

// Sections returns the page sections in declaration order.
func (s *Schema) Sections() []*Section { return s.sections }

// Render concatenates every section's markup in schema order.
func (s *Schema) Render(rc forms.RenderContext) string {
	var builder strings.Builder
	for _, section := range s.sections {
		builder.WriteString(section.Render(rc))
	}
	return builder.String()
}

// Parse flattens the whole submission into one delta, collecting every
// validation failure across all sections.
func (s *Schema) Parse(data url.Values) (forms.Delta, forms.ValidationErrors) {
	delta := make(forms.Delta)
	var errs forms.ValidationErrors
	for _, section := range s.sections {
		partial, sectionErrs := section.Parse(data)
		errs = append(errs, sectionErrs...)
		for key, value := range partial {
			delta[key] = value
		}
	}
	return delta, errs
}

func collectValidation(err error) forms.ValidationErrors {
	switch v := err.(type) {
	case forms.ValidationErrors:
		return v
	case *forms.ValidationError:
		return forms.ValidationErrors{v}
	default:
		return forms.ValidationErrors{&forms.ValidationError{Message: err.Error()}}
	}
}
