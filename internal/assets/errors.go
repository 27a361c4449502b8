package assets

import "errors"

var (
	// ErrTemplateNotFound means no embedded page template has the given name,
	// or the template file does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrStyleNotFound means no embedded stylesheet has the given name, or
	// the stylesheet file does not exist.
	ErrStyleNotFound = errors.New("style not found")

	// ErrInvalidAssetName rejects embedded names that are not plain words
	// and empty file paths.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrAssetRead wraps I/O failures other than a missing file.
	ErrAssetRead = errors.New("failed to read asset")
)
