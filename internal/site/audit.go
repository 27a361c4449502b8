package site

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// LinkWarning reports a local link whose target was not generated.
type LinkWarning struct {
	Page   string // output file containing the link
	Link   string // attribute value as written
	Target string // site-absolute path that does not exist
}

// auditLinks reads every generated page and reports a[href] and img[src]
// values that resolve to nothing under publicDir. A directory target counts
// as present when it holds an index.html.
func auditLinks(publicDir, basePath string, pages []PageResult) ([]LinkWarning, error) {
	var warnings []LinkWarning
	for _, p := range pages {
		if p.Err != nil {
			continue
		}

		data, err := os.ReadFile(p.Output) // #nosec G304 -- generated path
		if err != nil {
			return warnings, fmt.Errorf("auditing %s: %w", p.Output, err)
		}
		links, err := pipeline.LocalLinks(string(data), p.URL, basePath)
		if err != nil {
			return warnings, fmt.Errorf("auditing %s: %w", p.Output, err)
		}

		for _, l := range links {
			if targetExists(publicDir, l.Path) {
				continue
			}
			warnings = append(warnings, LinkWarning{Page: p.Output, Link: l.Value, Target: l.Path})
		}
	}
	return warnings, nil
}

func targetExists(publicDir, sitePath string) bool {
	local := filepath.Join(publicDir, filepath.FromSlash(strings.TrimPrefix(sitePath, "/")))
	if fileutil.FileExists(local) {
		return true
	}
	return fileutil.FileExists(filepath.Join(local, "index.html"))
}
