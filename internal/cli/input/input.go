// Package input reads free-text command input from a file or stdin.
package input

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadText returns the contents of path, or everything on stdin when path is
// empty.
func ReadText(path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// IsBlank reports whether text contains nothing but whitespace.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
