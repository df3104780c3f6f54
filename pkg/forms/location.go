package forms

import (
	"net/url"
	"strconv"
	"strings"
)

// LocationInput is a composite setting storing geographic coordinates under
// a single key as {"lat": float64, "lon": float64}. It renders as paired
// numeric controls named "<key>-lat" and "<key>-lon".
type LocationInput struct {
	baseInput
}

// NewLocation constructs a location input bound to one store key.
func NewLocation(key, label string, options ...FieldOption) *LocationInput {
	return &LocationInput{baseInput: newBase(key, label, DefaultConverter{}, options)}
}

// Coordinates returns the stored lat/lon pair; ok is false when the key is
// absent or malformed.
func (i *LocationInput) Coordinates(values Values) (lat, lon float64, ok bool) {
	if values == nil {
		return 0, 0, false
	}
	stored, present := values[i.key]
	if !present {
		return 0, 0, false
	}
	pair, isMap := stored.(map[string]any)
	if !isMap {
		return 0, 0, false
	}
	lat, latOK := asFloat(pair["lat"])
	lon, lonOK := asFloat(pair["lon"])
	return lat, lon, latOK && lonOK
}

func (i *LocationInput) Render(rc RenderContext) string {
	var latValue, lonValue string
	if lat, lon, ok := i.Coordinates(rc.Values); ok {
		latValue = strconv.FormatFloat(lat, 'f', -1, 64)
		lonValue = strconv.FormatFloat(lon, 'f', -1, 64)
	}

	var builder strings.Builder
	builder.WriteString(`<div class="sf-location">` + "\n")
	builder.WriteString(`    <input` + attr("type", "number") + attr("step", "any"))
	builder.WriteString(attr("id", "sf-"+i.key+"-lat") + attr("name", i.key+"-lat"))
	builder.WriteString(attr("value", latValue) + attr("placeholder", "Latitude"))
	builder.WriteString(` class="sf-control">` + "\n")
	builder.WriteString(`    <input` + attr("type", "number") + attr("step", "any"))
	builder.WriteString(attr("id", "sf-"+i.key+"-lon") + attr("name", i.key+"-lon"))
	builder.WriteString(attr("value", lonValue) + attr("placeholder", "Longitude"))
	builder.WriteString(` class="sf-control">` + "\n")
	builder.WriteString(`</div>`)
	return i.fieldMarkup(rc, builder.String())
}

func (i *LocationInput) Parse(data url.Values) (Delta, error) {
	latRaw := strings.TrimSpace(data.Get(i.key + "-lat"))
	lonRaw := strings.TrimSpace(data.Get(i.key + "-lon"))
	if latRaw == "" && lonRaw == "" {
		return Delta{i.key: Delete}, nil
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil, &ValidationError{Key: i.key, Message: "latitude must be a number"}
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		return nil, &ValidationError{Key: i.key, Message: "longitude must be a number"}
	}
	if lat < -90 || lat > 90 {
		return nil, &ValidationError{Key: i.key, Message: "latitude out of range"}
	}
	if lon < -180 || lon > 180 {
		return nil, &ValidationError{Key: i.key, Message: "longitude out of range"}
	}
	return Delta{i.key: map[string]any{"lat": lat, "lon": lon}}, nil
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
