package site

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/alnah/go-mdsite/internal/fileutil"
)

// markdownExts lists the source extensions turned into pages.
var markdownExts = []string{".md", ".markdown"}

// Page is a markdown source and the HTML file it generates.
type Page struct {
	Source string // path under the content directory
	Output string // path under the public directory
	URL    string // site-absolute path of Output, e.g. "/blog/index.html"
}

// discoverPages walks contentDir and maps every markdown file to its output
// under publicDir, keeping the relative directory structure. Pages are
// sorted naturally by relative path ("page2" before "page10").
func discoverPages(contentDir, publicDir string) ([]Page, error) {
	var pages []Page
	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.HasExtension(path, markdownExts...) {
			return nil
		}

		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}
		relHTML := strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"
		pages = append(pages, Page{
			Source: path,
			Output: filepath.Join(publicDir, relHTML),
			URL:    "/" + filepath.ToSlash(relHTML),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(pages, func(i, j int) bool {
		return natural.Less(pages[i].URL, pages[j].URL)
	})
	return pages, nil
}
