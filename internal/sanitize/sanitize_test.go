package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "email redacted",
			input: "contact jane.roe+support@example.co.uk for access",
			want:  "contact <EMAIL> for access",
		},
		{
			name:  "phone redacted",
			input: "call 011 4444-5555 today",
			want:  "call <PHONE> today",
		},
		{
			name:  "plain text untouched",
			input: "no personal data here",
			want:  "no personal data here",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  padded  ",
			want:  "padded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Redact(tt.input))
		})
	}
}
