// Package security holds input hygiene helpers for text that ends up on public pages.
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizer strips every HTML element from free text (announcements, questions,
// answers, chat messages). The front-end renders plain text only.
type TextSanitizer struct {
	policy *bluemonday.Policy
}

func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{policy: bluemonday.StrictPolicy()}
}

// maxDecodeRounds bounds how many layers of entity encoding Clean peels off.
const maxDecodeRounds = 5

// Clean removes markup and surrounding whitespace and returns plain text, so
// "Fajr & Isha" survives unchanged. Entity-encoded markup is decoded and stripped
// too: the result is a fixed point, sanitizing and decoding it again changes nothing.
func (s *TextSanitizer) Clean(text string) string {
	cur := text
	for i := 0; i < maxDecodeRounds; i++ {
		next := html.UnescapeString(s.policy.Sanitize(cur))
		if next == cur {
			return strings.TrimSpace(cur)
		}
		cur = next
	}
	// still decoding into new markup; keep the escaped form
	return strings.TrimSpace(s.policy.Sanitize(cur))
}
