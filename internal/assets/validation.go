package assets

import "fmt"

// maxNameLength bounds embedded asset names.
const maxNameLength = 64

// ValidateAssetName checks an embedded template or stylesheet name. Names
// are ASCII letters, digits, '-' and '_' only, so they can never reach
// outside the templates/ and styles/ directories or carry an extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidAssetName, maxNameLength)
	}
	for _, r := range name {
		if !isNameRune(r) {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidAssetName, name, r)
		}
	}
	return nil
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	default:
		return false
	}
}
