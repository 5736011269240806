package shortener

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sundayezeilo/shortlink/internal/errx"
	"github.com/sundayezeilo/shortlink/internal/idgen"
)

var _ Repository = (*MemoryStore)(nil)

// counter is the stats half of a record. The link itself lives only in
// MemoryStore.links, so Stats.Link is always built from the current URL.
type counter struct {
	id             uuid.UUID
	redirects      uint64
	createdAt      time.Time
	updatedAt      time.Time
	lastRedirectAt time.Time
}

// MemoryStore is the in-process link registry. It keeps two maps keyed by
// slug, one for links and one for counters, and only ever changes them
// together under mu. It is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	links    map[string]ShortLink
	counters map[string]*counter

	ids idgen.Generator
	now func() time.Time
}

// StoreConfig holds configuration for the memory store.
type StoreConfig struct {
	IDGenerator idgen.Generator
	Clock       func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(config *StoreConfig) *MemoryStore {
	if config == nil {
		config = &StoreConfig{}
	}

	ids := config.IDGenerator
	if ids == nil {
		ids = idgen.NewV7(idgen.WithRetries(1))
	}

	clock := config.Clock
	if clock == nil {
		clock = time.Now
	}

	return &MemoryStore{
		links:    make(map[string]ShortLink),
		counters: make(map[string]*counter),
		ids:      ids,
		now:      clock,
	}
}

// Contains reports whether slug is registered.
func (s *MemoryStore) Contains(_ context.Context, slug string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, _, ok := s.lookup(slug)
	return ok
}

// Len returns the number of registered links.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.links)
}

func (s *MemoryStore) Insert(_ context.Context, link ShortLink) (ShortLink, error) {
	const op = "shortener.store.Insert"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, _, ok := s.lookup(link.Slug); ok {
		return ShortLink{}, errx.E(op, errx.Conflict, fmt.Errorf("%w: %q", ErrSlugAlreadyInUse, link.Slug))
	}
	if err := s.insertLocked(link); err != nil {
		return ShortLink{}, errx.E(op, errx.Unavailable, err)
	}
	return link, nil
}

// InsertGenerated draws candidates from next until one is free and
// registers it. The whole loop runs under the write lock, so a candidate
// seen as free cannot be taken by a concurrent insert. There is no retry
// limit.
func (s *MemoryStore) InsertGenerated(_ context.Context, url string, next SlugSource) (ShortLink, error) {
	const op = "shortener.store.InsertGenerated"

	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		slug, err := next()
		if err != nil {
			return ShortLink{}, errx.E(op, errx.Unavailable, fmt.Errorf("generate slug: %w", err))
		}
		if _, _, taken := s.lookup(slug); taken {
			continue
		}

		link := ShortLink{Slug: slug, URL: url}
		if err := s.insertLocked(link); err != nil {
			return ShortLink{}, errx.E(op, errx.Unavailable, err)
		}
		return link, nil
	}
}

func (s *MemoryStore) GetLink(_ context.Context, slug string) (ShortLink, error) {
	const op = "shortener.store.GetLink"

	s.mu.RLock()
	defer s.mu.RUnlock()

	link, _, ok := s.lookup(slug)
	if !ok {
		return ShortLink{}, notFound(op, slug)
	}
	return link, nil
}

func (s *MemoryStore) GetStats(_ context.Context, slug string) (Stats, error) {
	const op = "shortener.store.GetStats"

	s.mu.RLock()
	defer s.mu.RUnlock()

	link, c, ok := s.lookup(slug)
	if !ok {
		return Stats{}, notFound(op, slug)
	}
	return c.snapshot(link), nil
}

// IncrementRedirects counts one redirect for slug and returns its link.
func (s *MemoryStore) IncrementRedirects(_ context.Context, slug string) (ShortLink, error) {
	const op = "shortener.store.IncrementRedirects"

	s.mu.Lock()
	defer s.mu.Unlock()

	link, c, ok := s.lookup(slug)
	if !ok {
		return ShortLink{}, notFound(op, slug)
	}
	c.redirects++
	c.lastRedirectAt = s.now()
	return link, nil
}

// SetURL replaces the URL of an existing link.
func (s *MemoryStore) SetURL(_ context.Context, slug, url string) (ShortLink, error) {
	const op = "shortener.store.SetURL"

	s.mu.Lock()
	defer s.mu.Unlock()

	link, c, ok := s.lookup(slug)
	if !ok {
		return ShortLink{}, notFound(op, slug)
	}
	link.URL = url
	s.links[slug] = link
	c.updatedAt = s.now()
	return link, nil
}

// lookup must be called with mu held. A slug present in only one of the
// two maps means the store is corrupt, which is a bug, not a caller error.
func (s *MemoryStore) lookup(slug string) (ShortLink, *counter, bool) {
	link, hasLink := s.links[slug]
	c, hasCounter := s.counters[slug]
	if hasLink != hasCounter {
		panic(fmt.Sprintf("shortener: store inconsistent for slug %q (link=%t, stats=%t)", slug, hasLink, hasCounter))
	}
	return link, c, hasLink
}

// insertLocked must be called with mu held for writing, after the caller
// has checked that link.Slug is free.
func (s *MemoryStore) insertLocked(link ShortLink) error {
	id, err := s.ids.Generate()
	if err != nil {
		return fmt.Errorf("generate record id: %w", err)
	}

	now := s.now()
	s.links[link.Slug] = link
	s.counters[link.Slug] = &counter{
		id:        id,
		createdAt: now,
		updatedAt: now,
	}
	return nil
}

func (c *counter) snapshot(link ShortLink) Stats {
	st := Stats{
		Link:      link,
		Redirects: c.redirects,
		ID:        c.id,
		CreatedAt: c.createdAt,
		UpdatedAt: c.updatedAt,
	}
	if !c.lastRedirectAt.IsZero() {
		t := c.lastRedirectAt
		st.LastRedirectAt = &t
	}
	return st
}

func notFound(op, slug string) error {
	return errx.E(op, errx.NotFound, fmt.Errorf("%w: %q", ErrSlugNotFound, slug))
}
