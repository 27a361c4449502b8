package mdsite

import (
	"errors"

	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/htmlnode"
	"github.com/alnah/go-mdsite/internal/inline"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")

	// Tree serialization errors.
	ErrMissingLeafValue    = htmlnode.ErrMissingLeafValue
	ErrEmptyParentChildren = htmlnode.ErrEmptyParentChildren
	ErrUnsupportedNode     = htmlnode.ErrUnsupportedNode

	// Markdown syntax errors.
	ErrMalformedInline         = inline.ErrMalformedInline
	ErrUnsupportedBlockType    = pipeline.ErrUnsupportedBlockType
	ErrUnsupportedFragmentKind = pipeline.ErrUnsupportedFragmentKind
	ErrEmptyDocument           = pipeline.ErrEmptyDocument
	ErrNoHeading               = pipeline.ErrNoHeading

	// Engine errors.
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrUnknownEngine  = pipeline.ErrUnknownEngine

	// Template errors.
	ErrTemplateNotFound    = assets.ErrTemplateNotFound
	ErrTemplatePlaceholder = pipeline.ErrTemplatePlaceholder
	ErrInvalidAssetName    = assets.ErrInvalidAssetName
)

// IsContentError reports whether err comes from the markdown itself rather
// than from I/O or configuration.
func IsContentError(err error) bool {
	for _, target := range []error{
		ErrEmptyMarkdown,
		ErrMissingLeafValue,
		ErrEmptyParentChildren,
		ErrMalformedInline,
		ErrUnsupportedBlockType,
		ErrUnsupportedFragmentKind,
		ErrEmptyDocument,
		ErrNoHeading,
		ErrHTMLConversion,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
