package shortener

import "context"

// SlugSource yields candidate slugs for a generated link.
type SlugSource func() (string, error)

// Repository defines the persistence operations for short links.
//
// Insert and InsertGenerated are atomic insert-if-absent operations: the
// existence check and the write happen as one step, so two callers can
// never claim the same slug. SetURL and IncrementRedirects mutate an
// existing record in place and report a NotFound error for unknown slugs.
type Repository interface {
	Insert(ctx context.Context, link ShortLink) (ShortLink, error)
	InsertGenerated(ctx context.Context, url string, next SlugSource) (ShortLink, error)
	GetStats(ctx context.Context, slug string) (Stats, error)
	IncrementRedirects(ctx context.Context, slug string) (ShortLink, error)
	SetURL(ctx context.Context, slug, url string) (ShortLink, error)
}
