package forms

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	infoPolicyOnce sync.Once
	infoPolicy     *bluemonday.Policy
)

// sanitizeInfoText strips everything from operator-authored help markup
// except a small inline vocabulary. Info text routinely carries links to
// external documentation, so anchors keep their href.
func sanitizeInfoText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := strings.TrimSpace(infoSanitizer().Sanitize(trimmed))
	return cleaned
}

func infoSanitizer() *bluemonday.Policy {
	infoPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("em", "strong", "code", "br")
		policy.AllowAttrs("href", "target", "rel").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(false)
		infoPolicy = policy
	})
	return infoPolicy
}
