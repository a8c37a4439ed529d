package settings

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// textPolicy strips every tag.
	textPolicy = bluemonday.StrictPolicy()
	// richPolicy keeps the tags that are safe in user-authored post content.
	richPolicy = bluemonday.UGCPolicy()
)

// SanitizeText reduces s to a single line of plain text: tags are removed,
// runs of whitespace collapse to one space, and the result is trimmed.
func SanitizeText(s string) string {
	stripped := html.UnescapeString(textPolicy.Sanitize(s))
	return strings.Join(strings.Fields(stripped), " ")
}

// SanitizeRichText keeps allowlisted markup and drops scripts, event
// handlers and unsafe URLs. The output is an HTML fragment.
func SanitizeRichText(s string) string {
	return richPolicy.Sanitize(s)
}
