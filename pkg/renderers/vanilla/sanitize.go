package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

// sanitizeHelpMarkup strips everything but harmless inline markup from field
// descriptions and summaries before they reach the template as safe HTML.
func sanitizeHelpMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	policy := helpSanitizer()
	return strings.TrimSpace(policy.Sanitize(trimmed))
}

func helpSanitizer() *bluemonday.Policy {
	helpPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("a", "em", "strong", "code", "span", "br")
		policy.AllowAttrs("href", "rel", "target").OnElements("a")
		policy.AllowAttrs("class").OnElements("span")
		policy.RequireNoFollowOnLinks(true)

		helpPolicy = policy
	})
	return helpPolicy
}
