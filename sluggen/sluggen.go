// Package sluggen provides random slug generation.
// Generators are safe for concurrent use.
package sluggen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const (
	// Alphanumeric is the default alphabet: A-Z, a-z and 0-9, each once.
	Alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// Readable drops the visually ambiguous i, I, l, L, o and O.
	Readable = "aAbBcCdDeEfFgGhHjJkKmMnNpPqQrRsStTuUvVwWxXyYzZ0123456789"
)

// Generator generates URL slugs.
// Implementations should be safe for concurrent use.
type Generator interface {
	Generate(length int) (string, error)
}

// alphabetGenerator draws characters from its alphabet without replacement,
// so no character repeats within a single slug.
type alphabetGenerator struct {
	alphabet []byte
}

// New returns a generator over Alphanumeric.
func New() Generator {
	return &alphabetGenerator{alphabet: []byte(Alphanumeric)}
}

// NewWithAlphabet returns a generator over a custom alphabet. Every
// character of alphabet must be a distinct single-byte symbol.
func NewWithAlphabet(alphabet string) (Generator, error) {
	if alphabet == "" {
		return nil, errors.New("alphabet cannot be empty")
	}
	seen := make(map[byte]struct{}, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		if c >= 0x80 {
			return nil, fmt.Errorf("alphabet contains non-ASCII byte at position %d", i)
		}
		if _, ok := seen[c]; ok {
			return nil, fmt.Errorf("alphabet contains duplicate character %q", c)
		}
		seen[c] = struct{}{}
	}
	return &alphabetGenerator{alphabet: []byte(alphabet)}, nil
}

// Generate returns length distinct characters of the alphabet in draw order.
func (g *alphabetGenerator) Generate(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("length must be positive")
	}
	if length > len(g.alphabet) {
		return "", fmt.Errorf("length must not exceed alphabet size %d", len(g.alphabet))
	}

	// Partial Fisher-Yates over a private copy: position i receives a
	// uniformly chosen symbol from the not-yet-drawn tail.
	pool := make([]byte, len(g.alphabet))
	copy(pool, g.alphabet)

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(pool)-i)))
		if err != nil {
			return "", err
		}
		j := i + int(n.Int64())
		pool[i], pool[j] = pool[j], pool[i]
	}

	return string(pool[:length]), nil
}
