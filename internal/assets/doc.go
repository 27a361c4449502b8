// Package assets provides the page template and stylesheet used when a site
// does not supply its own.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    └── FilesystemLoader  - loads a user template from disk
//
// ResolveTemplate picks a loader for a template reference: a value that
// looks like a path is read from disk, anything else is an embedded name.
//
// # Embedded Layout
//
//	templates/{name}.html   # page templates with {{ Title }} and {{ Content }}
//	styles/{name}.css       # stylesheets
package assets
