package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FilesystemLoader reads assets from explicit file paths.
// Implements AssetLoader interface.
type FilesystemLoader struct{}

// NewFilesystemLoader creates a FilesystemLoader.
func NewFilesystemLoader() *FilesystemLoader {
	return &FilesystemLoader{}
}

// LoadTemplate reads a page template file.
func (f *FilesystemLoader) LoadTemplate(path string) (string, error) {
	return readAsset(path, ErrTemplateNotFound)
}

// LoadStyle reads a stylesheet file.
func (f *FilesystemLoader) LoadStyle(path string) (string, error) {
	return readAsset(path, ErrStyleNotFound)
}

func readAsset(path string, notFound error) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidAssetName)
	}

	content, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 -- user-provided asset path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", notFound, path)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// Compile-time interface check.
var _ AssetLoader = (*FilesystemLoader)(nil)
