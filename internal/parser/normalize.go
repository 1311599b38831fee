package parser

import (
	"regexp"
	"strings"
)

var horizontalWS = regexp.MustCompile(`[ \t]+`)

// Normalize replaces non-breaking spaces with plain spaces, collapses runs of
// horizontal whitespace (newlines are preserved) and trims the result.
// Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = horizontalWS.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
