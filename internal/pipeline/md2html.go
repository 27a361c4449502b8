package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-mdsite/internal/htmlnode"
)

// ErrHTMLConversion indicates the goldmark engine failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// Engine names accepted by NewHTMLConverter.
const (
	EngineNative   = "native"
	EngineGoldmark = "goldmark"
)

// ErrUnknownEngine indicates an unsupported engine name.
var ErrUnknownEngine = errors.New("unknown markdown engine")

// HTMLConverter abstracts Markdown to HTML conversion. Output is a body
// fragment wrapped in a single <div>.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// Options configures the native converter.
type Options struct {
	// Escape HTML-escapes text and attribute values on output.
	Escape bool
}

// NewHTMLConverter returns the converter registered under engine. An empty
// name selects the native engine.
func NewHTMLConverter(engine string, opts Options) (HTMLConverter, error) {
	switch engine {
	case "", EngineNative:
		return NewNativeConverter(opts), nil
	case EngineGoldmark:
		return NewGoldmarkConverter(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}

// NativeConverter renders markdown with this package's block and inline
// rules.
type NativeConverter struct {
	opts Options
}

// NewNativeConverter creates a NativeConverter.
func NewNativeConverter(opts Options) *NativeConverter {
	return &NativeConverter{opts: opts}
}

// ToHTML converts content to an HTML fragment. Conversion runs to completion
// once started; ctx is only checked beforehand.
func (c *NativeConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return MarkdownToHTML(content, c.opts)
}

// MarkdownToHTML converts markdown to a serialized <div> tree.
func MarkdownToHTML(markdown string, opts Options) (string, error) {
	root, err := DocumentToNode(markdown)
	if err != nil {
		return "", err
	}
	return htmlnode.RenderWith(root, htmlnode.RenderOptions{Escape: opts.Escape})
}

// GoldmarkConverter converts Markdown to HTML using goldmark (CommonMark and
// GFM) with class-based syntax highlighting.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and syntax highlighting.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// WithUnsafe is left off: raw HTML in markdown is dropped.
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to a <div> fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		buf.WriteString("<div>")
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		buf.WriteString("</div>")
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
