// Package sanitize redacts obvious PII before prompts and model responses
// are written to the audit log.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	emailRE = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.-]+`)
	phoneRE = regexp.MustCompile(`\b\+?\d[\d\s()-]{7,}\b`)
)

// Redact replaces email addresses and phone numbers with placeholders.
func Redact(text string) string {
	redacted := emailRE.ReplaceAllString(text, "<EMAIL>")
	redacted = phoneRE.ReplaceAllString(redacted, "<PHONE>")
	return strings.TrimSpace(redacted)
}
