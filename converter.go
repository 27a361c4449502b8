package mdsite

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.LineEndingPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.NativeConverter)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
)

// Converter turns a markdown document into a complete HTML page.
// Create with NewConverter. A Converter is safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	template      string
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
}

// NewConverter creates a Converter with default configuration.
// Returns error if the engine is unknown or the template cannot be loaded
// or lacks a placeholder.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          converterConfig{engine: EngineNative, basePath: "/"},
		preprocessor: &pipeline.LineEndingPreprocessor{},
	}

	for _, opt := range opts {
		opt(c)
	}

	var err error
	if c.htmlConverter == nil {
		c.htmlConverter, err = pipeline.NewHTMLConverter(c.cfg.engine, pipeline.Options{Escape: c.cfg.escape})
		if err != nil {
			return nil, err
		}
	}

	tmpl := c.cfg.template
	if !c.cfg.hasTemplate {
		tmpl, err = assets.ResolveTemplate(c.cfg.templateRef)
		if err != nil {
			return nil, fmt.Errorf("loading template: %w", err)
		}
	}
	if err := pipeline.ValidateTemplate(tmpl); err != nil {
		return nil, err
	}
	c.template = tmpl

	return c, nil
}

// Convert runs the full pipeline and returns the filled page.
// The context is used for cancellation.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	title, err := pipeline.ExtractTitle(mdContent)
	if err != nil {
		return nil, err
	}

	content, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	page := pipeline.FillTemplate(c.template, title, content, c.cfg.basePath)
	return &Result{
		HTML:    []byte(page),
		Title:   title,
		Content: content,
	}, nil
}

// Engine returns the configured engine name.
func (c *Converter) Engine() string {
	return c.cfg.engine
}

// MarkdownToHTML converts markdown to an HTML fragment wrapped in a single
// <div>, using the native engine without escaping.
func MarkdownToHTML(markdown string) (string, error) {
	return pipeline.MarkdownToHTML(markdown, pipeline.Options{})
}

// ExtractTitle returns the text of the first level-1 heading of markdown.
// Returns ErrNoHeading if there is none.
func ExtractTitle(markdown string) (string, error) {
	return pipeline.ExtractTitle(markdown)
}
