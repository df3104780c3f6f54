package settings

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrMalformedBody marks a submission body that is not valid
// application/x-www-form-urlencoded data. Callers can distinguish it from
// storage failures with errors.Is and answer with a client error.
var ErrMalformedBody = errors.New("settings: malformed form body")

// DecodeForm parses an application/x-www-form-urlencoded request body.
// Repeated keys are preserved in submission order, which multi-select
// inputs rely on.
func DecodeForm(body string) (url.Values, error) {
	data, err := url.ParseQuery(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return data, nil
}
