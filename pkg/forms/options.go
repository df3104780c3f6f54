package forms

import "fmt"

// Option is a static {id, label} pair used by choice-based inputs. Options
// are defined by schema authors and never change at runtime.
type Option struct {
	ID    string
	Label string
}

// NewOption constructs an Option, labelling it with the id when no label is
// given.
func NewOption(id, label string) Option {
	if label == "" {
		label = id
	}
	return Option{ID: id, Label: label}
}

// OptionRange builds one Option per value using a format string for the
// label, e.g. OptionRange([]string{"60","120"}, "%ss").
func OptionRange[T any](values []T, labelFormat string) []Option {
	options := make([]Option, 0, len(values))
	for _, value := range values {
		id := fmt.Sprint(value)
		options = append(options, Option{ID: id, Label: fmt.Sprintf(labelFormat, value)})
	}
	return options
}

func optionIDs(options []Option) map[string]struct{} {
	ids := make(map[string]struct{}, len(options))
	for _, option := range options {
		ids[option.ID] = struct{}{}
	}
	return ids
}
