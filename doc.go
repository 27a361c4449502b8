// Package mdsite converts Markdown documents to HTML pages and builds static
// sites from a directory of Markdown files.
//
// # Quick Start
//
// Create a converter and convert markdown:
//
//	conv, err := mdsite.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, mdsite.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("index.html", result.HTML, 0644)
//
// The result contains the full page (result.HTML), the extracted title
// (result.Title), and the converted body fragment (result.Content).
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Line-ending normalization
//  2. Title extraction from the first "# " heading
//  3. Markdown to HTML conversion (native engine or goldmark)
//  4. Template filling and base path rewriting
//
// The native engine understands a deliberately small dialect: paragraphs,
// headings, fenced code, quotes, unordered and ordered lists, plus bold,
// italic, code, link and image spans. Use MarkdownToHTML for the fragment
// alone.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := mdsite.NewConverter(
//	    mdsite.WithEngine(mdsite.EngineGoldmark),
//	    mdsite.WithBasePath("/repo/"),
//	    mdsite.WithTemplate("./template.html"),
//	)
//
// # Errors
//
// Conversion errors wrap the sentinels declared in this package, so callers
// can match them with errors.Is:
//
//	if errors.Is(err, mdsite.ErrMalformedInline) { ... }
//
// # Site Builds
//
// The mdsite command (cmd/mdsite) wraps Converter with a site generator that
// copies static files, converts every page of a content tree concurrently,
// and optionally audits generated links.
package mdsite
