package forms

import (
	"net/url"
	"strings"
)

// AvatarInput shows the current receiver image with an upload control. The
// actual file transfer happens out of band against an upload endpoint, so
// parsing a page submission never touches the key.
type AvatarInput struct {
	baseInput
	imageURL string
}

// NewAvatar constructs an avatar widget bound to one store key. imageURL is
// where the current image is served from.
func NewAvatar(key, label, imageURL string, options ...FieldOption) *AvatarInput {
	return &AvatarInput{
		baseInput: newBase(key, label, DefaultConverter{}, options),
		imageURL:  imageURL,
	}
}

func (i *AvatarInput) Render(rc RenderContext) string {
	var builder strings.Builder
	builder.WriteString(`<div class="sf-avatar">` + "\n")
	builder.WriteString(`    <img` + attr("src", i.imageURL) + attr("alt", i.label) + ` class="sf-avatar-preview">` + "\n")
	builder.WriteString(`    <input` + attr("type", "file") + attr("id", "sf-"+i.key))
	builder.WriteString(attr("data-upload-key", i.key) + attr("accept", "image/*") + `>` + "\n")
	builder.WriteString(`</div>`)
	return i.fieldMarkup(rc, builder.String())
}

func (i *AvatarInput) Parse(url.Values) (Delta, error) {
	return Delta{}, nil
}
