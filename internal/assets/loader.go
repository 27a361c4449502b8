package assets

import "github.com/alnah/go-mdsite/internal/fileutil"

// DefaultName names the built-in template and style.
const DefaultName = "default"

// AssetLoader loads page templates and stylesheets.
type AssetLoader interface {
	// LoadTemplate returns template content.
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(ref string) (string, error)

	// LoadStyle returns CSS content.
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(ref string) (string, error)
}

// ResolveTemplate loads a template by reference. An empty ref selects the
// embedded default; a ref containing a path separator or ending in .html is
// read from disk; anything else is an embedded template name.
func ResolveTemplate(ref string) (string, error) {
	loader, name := resolve(ref)
	return loader.LoadTemplate(name)
}

// ResolveStyle loads a stylesheet by reference, with the same rules as
// ResolveTemplate.
func ResolveStyle(ref string) (string, error) {
	loader, name := resolve(ref)
	return loader.LoadStyle(name)
}

func resolve(ref string) (AssetLoader, string) {
	switch {
	case ref == "":
		return NewEmbeddedLoader(), DefaultName
	case fileutil.IsFilePath(ref) || fileutil.HasExtension(ref, ".html", ".css"):
		return NewFilesystemLoader(), ref
	default:
		return NewEmbeddedLoader(), ref
	}
}
