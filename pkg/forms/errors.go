package forms

import (
	"fmt"
	"strings"
)

// ValidationError reports that the submitted value for one setting could not
// be interpreted. The whole submission is rejected when any field carries one.
type ValidationError struct {
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Key == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Key, e.Message)
}

// invalidf builds a ValidationError without a key; the owning Input fills the
// key in before surfacing it.
func invalidf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// keyed returns err with the input's key applied when the converter did not
// know it. Non-validation errors pass through untouched.
func keyed(key string, err error) error {
	if verr, ok := err.(*ValidationError); ok && verr.Key == "" {
		return &ValidationError{Key: key, Message: verr.Message}
	}
	return err
}

// ValidationErrors aggregates every failing field of a submission so the form
// can be redisplayed with all problems at once.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	parts := make([]string, 0, len(e))
	for _, verr := range e {
		parts = append(parts, verr.Error())
	}
	return strings.Join(parts, "; ")
}

// ByKey indexes the collected messages by store key for per-field display.
// Later errors for the same key win.
func (e ValidationErrors) ByKey() map[string]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string]string, len(e))
	for _, verr := range e {
		out[verr.Key] = verr.Message
	}
	return out
}

// Messages returns the flattened error strings in submission order.
func (e ValidationErrors) Messages() []string {
	if len(e) == 0 {
		return nil
	}
	out := make([]string, 0, len(e))
	for _, verr := range e {
		out = append(out, verr.Error())
	}
	return out
}
