package pipeline

import (
	"errors"
	"strings"
)

// ErrNoHeading indicates a document without a level-1 heading.
var ErrNoHeading = errors.New("no h1 heading found")

// ExtractTitle returns the text of the first line starting with "# ".
// Lines are trimmed before matching, so an indented "  # Title" counts.
func ExtractTitle(markdown string) (string, error) {
	for _, line := range strings.Split(markdown, "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return strings.TrimSpace(rest), nil
		}
	}
	return "", ErrNoHeading
}
