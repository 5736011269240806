package shortener

import (
	"time"

	"github.com/google/uuid"
)

// ShortLink maps a slug to the URL it redirects to. Values are snapshots;
// changing one never affects the registry.
type ShortLink struct {
	Slug string
	URL  string
}

// Stats is the read-side view of a link and its redirect counter.
type Stats struct {
	Link      ShortLink
	Redirects uint64

	ID             uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastRedirectAt *time.Time
}

// CreateLinkRequest represents the parameters for creating a new link.
type CreateLinkRequest struct {
	URL  string
	Slug string // Optional: if empty, a slug will be generated
}
