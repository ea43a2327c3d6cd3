package domain

import "fmt"

// MaxSlugLength bounds slug size; anything longer cannot exist in the store.
const MaxSlugLength = 64

// ValidateSlug checks that s is a non-empty token of letters, digits, '-' and
// '_'. Lookups are case-sensitive, so no normalization is applied.
func ValidateSlug(s string) error {
	if s == "" {
		return fmt.Errorf("slug is empty: %w", ErrValidation)
	}
	if len(s) > MaxSlugLength {
		return fmt.Errorf("slug exceeds %d characters: %w", MaxSlugLength, ErrValidation)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return fmt.Errorf("slug contains invalid character %q: %w", c, ErrValidation)
		}
	}
	return nil
}
