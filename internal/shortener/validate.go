package shortener

import (
	"fmt"
	"strings"
)

var allowedSchemes = []string{"http://", "https://"}

// ValidURL reports whether rawURL starts with http:// or https:// and has
// something after the scheme. Nothing else about the URL is checked.
func ValidURL(rawURL string) bool {
	return validateURL(rawURL) == nil
}

func validateURL(rawURL string) error {
	for _, scheme := range allowedSchemes {
		rest, ok := strings.CutPrefix(rawURL, scheme)
		if !ok {
			continue
		}
		if rest == "" {
			return fmt.Errorf("%w: missing host after %s", ErrInvalidURL, scheme)
		}
		return nil
	}
	return fmt.Errorf("%w: scheme must be http or https", ErrInvalidURL)
}
