// Package hints provides actionable error hints for common build failures.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the user config location among the searched paths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-mdsite") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForContentNotFound returns hints when the content directory is missing.
func ForContentNotFound() string {
	return format("run from the site root or pass --content <dir>")
}

// ForTemplateNotFound returns hints for template not found errors.
func ForTemplateNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; or pass a path ending in .html")
}

// ForTemplatePlaceholder returns hints for templates missing a placeholder.
func ForTemplatePlaceholder() string {
	return format("templates must contain {{ Title }} and {{ Content }}")
}

// ForBasePath returns hints for rejected base paths.
func ForBasePath() string {
	return format(`base paths look like "/repo/" or "https://example.com/docs/"`)
}

// ForPublicDirectory returns hints for public directory errors.
func ForPublicDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
