package shortener

import "errors"

var (
	// ErrInvalidURL is returned when a URL fails validation.
	ErrInvalidURL = errors.New("invalid url")

	// ErrSlugAlreadyInUse is returned when creating a link whose slug
	// already maps to a link.
	ErrSlugAlreadyInUse = errors.New("slug already in use")

	// ErrSlugNotFound is returned when a slug does not map to any link.
	ErrSlugNotFound = errors.New("slug not found")
)
