package main

import (
	"errors"
	"os"

	"github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/logging"
	"github.com/alnah/go-mdsite/internal/site"
)

// Exit codes for mdsite CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Site generated without failures
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, template, or engine
	ExitIO      = 3 // File not found, permission denied
	ExitContent = 4 // Markdown that cannot be converted
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
// Combined page errors map to the first matching category below.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Markdown content errors (exit 4)
	if mdsite.IsContentError(err) {
		return ExitContent
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, site.ErrContentNotFound) ||
		errors.Is(err, site.ErrReadMarkdown) ||
		errors.Is(err, site.ErrWritePage) ||
		errors.Is(err, site.ErrCleanPublic) ||
		errors.Is(err, site.ErrCopyStatic) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, errUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigTooLarge) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, logging.ErrUnknownLevel) ||
		errors.Is(err, mdsite.ErrUnknownEngine) ||
		errors.Is(err, mdsite.ErrTemplateNotFound) ||
		errors.Is(err, mdsite.ErrTemplatePlaceholder) ||
		errors.Is(err, mdsite.ErrInvalidAssetName) ||
		errors.Is(err, site.ErrUnsafePublicDir) {
		return ExitUsage
	}

	return ExitGeneral
}
