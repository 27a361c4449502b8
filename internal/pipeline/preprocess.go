package pipeline

import (
	"context"
	"regexp"
)

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// MarkdownPreprocessor prepares raw file content for conversion.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// LineEndingPreprocessor normalizes line endings so that blank-line block
// splitting works on files saved with CRLF or CR endings.
type LineEndingPreprocessor struct{}

// PreprocessMarkdown converts \r\n and \r to \n.
func (p *LineEndingPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}
