package forms

import (
	"fmt"
	"strconv"
	"strings"
)

// Values is a read-only snapshot of the configuration store, keyed by setting
// name. Inputs only ever read from it; mutations flow through a Delta.
type Values map[string]any

// Delta maps store keys to decoded values, or to Delete for removals. It is
// the unit of work a submission produces before the atomic commit.
type Delta map[string]any

// DeleteMarker is the sentinel type meaning "remove this key from the store".
// It is distinct from every storable value, including false and "".
type DeleteMarker struct{}

// Delete is the canonical DeleteMarker instance. Compare decoded values
// against it to detect removals.
var Delete = DeleteMarker{}

// Converter transforms between a setting's stored representation and the
// string form that travels through widgets and submissions.
//
// Encode never fails; absent keys arrive as nil and must produce a
// type-appropriate zero display value. Decode receives the ordered raw
// strings submitted for one key and returns the decoded stored value, Delete,
// or a *ValidationError when the raw form cannot be interpreted.
type Converter interface {
	Encode(stored any) string
	Decode(raw []string) (any, error)
}

// DefaultConverter passes values through as strings. An empty submission
// (no value at all for the key) decodes to Delete.
type DefaultConverter struct{}

func (DefaultConverter) Encode(stored any) string {
	if stored == nil {
		return ""
	}
	return fmt.Sprint(stored)
}

func (DefaultConverter) Decode(raw []string) (any, error) {
	if len(raw) == 0 {
		return Delete, nil
	}
	return raw[0], nil
}

// OptionalConverter wraps another converter and treats an empty submitted
// string as "clear this setting". This is deliberately different from
// DefaultConverter, which would store the empty string.
type OptionalConverter struct {
	// Inner decodes non-empty submissions. Defaults to DefaultConverter.
	Inner Converter
}

func (c OptionalConverter) inner() Converter {
	if c.Inner != nil {
		return c.Inner
	}
	return DefaultConverter{}
}

func (c OptionalConverter) Encode(stored any) string {
	if stored == nil {
		return ""
	}
	return c.inner().Encode(stored)
}

func (c OptionalConverter) Decode(raw []string) (any, error) {
	if len(raw) == 0 || strings.TrimSpace(raw[0]) == "" {
		return Delete, nil
	}
	return c.inner().Decode(raw)
}

// IntConverter decodes whole-number settings. Non-numeric input is a
// validation failure, never a silent default.
type IntConverter struct{}

func (IntConverter) Encode(stored any) string {
	switch v := stored.(type) {
	case nil:
		return ""
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		// JSON round trips store numbers as float64.
		return strconv.FormatInt(int64(v), 10)
	default:
		return fmt.Sprint(stored)
	}
}

func (IntConverter) Decode(raw []string) (any, error) {
	if len(raw) == 0 {
		return Delete, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw[0]))
	if err != nil {
		return nil, invalidf("%q is not a whole number", raw[0])
	}
	return value, nil
}

// FloatConverter decodes floating-point settings.
type FloatConverter struct{}

func (FloatConverter) Encode(stored any) string {
	switch v := stored.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(stored)
	}
}

func (FloatConverter) Decode(raw []string) (any, error) {
	if len(raw) == 0 {
		return Delete, nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw[0]), 64)
	if err != nil {
		return nil, invalidf("%q is not a number", raw[0])
	}
	return value, nil
}

// TextListConverter maps a line-delimited textarea onto a stored string
// slice. Lines are trimmed and blank lines are skipped silently; an entirely
// blank submission clears the key.
type TextListConverter struct{}

func (TextListConverter) Encode(stored any) string {
	switch v := stored.(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(v, "\n")
	case []any:
		lines := make([]string, 0, len(v))
		for _, item := range v {
			lines = append(lines, fmt.Sprint(item))
		}
		return strings.Join(lines, "\n")
	default:
		return fmt.Sprint(stored)
	}
}

func (TextListConverter) Decode(raw []string) (any, error) {
	if len(raw) == 0 {
		return Delete, nil
	}
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(raw[0], "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lines = append(lines, trimmed)
	}
	if len(lines) == 0 {
		return Delete, nil
	}
	return lines, nil
}
