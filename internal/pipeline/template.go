package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Template placeholders replaced by FillTemplate.
const (
	TitlePlaceholder   = "{{ Title }}"
	ContentPlaceholder = "{{ Content }}"
)

// ErrTemplatePlaceholder indicates a page template missing a placeholder.
var ErrTemplatePlaceholder = errors.New("template missing placeholder")

// ValidateTemplate checks that tmpl contains both placeholders.
func ValidateTemplate(tmpl string) error {
	for _, p := range []string{TitlePlaceholder, ContentPlaceholder} {
		if !strings.Contains(tmpl, p) {
			return fmt.Errorf("%w: %s", ErrTemplatePlaceholder, p)
		}
	}
	return nil
}

// FillTemplate substitutes title and content into tmpl, then rewrites
// root-relative href="/ and src="/ prefixes to basePath. An empty basePath
// is treated as "/".
func FillTemplate(tmpl, title, content, basePath string) string {
	page := strings.ReplaceAll(tmpl, TitlePlaceholder, title)
	page = strings.ReplaceAll(page, ContentPlaceholder, content)
	return RewriteBasePath(page, basePath)
}

// RewriteBasePath replaces the literal prefixes href="/ and src="/ with
// basePath. The rewrite is textual and also applies inside code blocks.
func RewriteBasePath(page, basePath string) string {
	if basePath == "" || basePath == "/" {
		return page
	}
	r := strings.NewReplacer(
		`href="/`, `href="`+basePath,
		`src="/`, `src="`+basePath,
	)
	return r.Replace(page)
}
