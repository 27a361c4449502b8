package mdsite

import "github.com/alnah/go-mdsite/internal/pipeline"

// Engine names accepted by WithEngine.
const (
	EngineNative   = pipeline.EngineNative
	EngineGoldmark = pipeline.EngineGoldmark
)

// Input contains conversion parameters.
type Input struct {
	Markdown string // Markdown content (required)
}

// Result contains the output of a conversion.
type Result struct {
	HTML    []byte // Full page: template filled with title and content
	Title   string // Text of the first "# " heading
	Content string // Converted body fragment, before templating
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	engine      string
	escape      bool
	basePath    string
	templateRef string
	template    string
	hasTemplate bool
}

// WithEngine selects the markdown engine: EngineNative (default) or
// EngineGoldmark.
func WithEngine(name string) Option {
	return func(c *Converter) {
		c.cfg.engine = name
	}
}

// WithEscaping HTML-escapes text and attribute values produced by the
// native engine. Off by default: markdown text is emitted verbatim.
func WithEscaping(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.escape = enabled
	}
}

// WithBasePath rewrites root-relative href="/ and src="/ prefixes in the
// filled page to basePath. Default "/" leaves them unchanged.
func WithBasePath(basePath string) Option {
	return func(c *Converter) {
		c.cfg.basePath = basePath
	}
}

// WithTemplate selects the page template by reference: an embedded name,
// or a file path (containing a separator or ending in .html).
func WithTemplate(ref string) Option {
	return func(c *Converter) {
		c.cfg.templateRef = ref
	}
}

// WithTemplateContent uses tmpl as the page template. Takes precedence
// over WithTemplate.
func WithTemplateContent(tmpl string) Option {
	return func(c *Converter) {
		c.cfg.template = tmpl
		c.cfg.hasTemplate = true
	}
}
