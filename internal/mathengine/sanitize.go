package mathengine

import (
	"regexp"
	"strings"
)

var (
	disallowedChars = regexp.MustCompile(`[^0-9+\-*/%^().\s]`)
	allowedExpr     = regexp.MustCompile(`^[0-9+\-*/%^().\s]+$`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// Sanitize deletes every character outside the arithmetic alphabet, trims the
// remainder and collapses whitespace runs to a single space. An empty return
// value means the input was rejected.
//
// Disallowed characters are dropped silently rather than rejecting the whole
// input, so "12 apples + 3" sanitizes to "12 + 3".
func Sanitize(raw string) string {
	stripped := strings.TrimSpace(disallowedChars.ReplaceAllString(raw, ""))
	if stripped == "" || !allowedExpr.MatchString(stripped) {
		return ""
	}
	return whitespaceRun.ReplaceAllString(stripped, " ")
}
