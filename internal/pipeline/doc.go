// Package pipeline implements the Markdown-to-HTML conversion pipeline.
//
// The native engine runs in three stages:
//   - block splitting and classification (package block)
//   - inline tokenizing of each block's text (package inline)
//   - tree assembly into an htmlnode tree, then serialization
//
// The package also holds the pieces the site generator wraps around a
// converted document: title extraction, page template filling with base
// path rewriting, line-ending normalization, an alternate goldmark engine,
// and link collection for auditing generated pages.
//
// Every function here is pure; converters are safe for concurrent use.
package pipeline
