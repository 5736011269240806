package sluggen

import (
	"strings"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	if gen := New(); gen == nil {
		t.Fatal("New() returned nil")
	}
}

func TestGenerator_Generate(t *testing.T) {
	t.Run("generates slug of correct length", func(t *testing.T) {
		gen := New()

		for _, length := range []int{1, 5, 6, 10, 32, 62} {
			slug, err := gen.Generate(length)
			if err != nil {
				t.Fatalf("Generate(%d) unexpected error: %v", length, err)
			}
			if len(slug) != length {
				t.Errorf("Generate(%d) returned length %d, want %d", length, len(slug), length)
			}
		}
	})

	t.Run("generates unique slugs", func(t *testing.T) {
		gen := New()
		seen := make(map[string]bool)

		for i := 0; i < 1000; i++ {
			slug, err := gen.Generate(10)
			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if seen[slug] {
				t.Errorf("Generate() produced duplicate slug: %q", slug)
			}
			seen[slug] = true
		}
	})

	t.Run("generates only alphabet characters", func(t *testing.T) {
		gen := New()

		for _, length := range []int{6, 30, 62} {
			slug, err := gen.Generate(length)
			if err != nil {
				t.Fatalf("Generate(%d) unexpected error: %v", length, err)
			}
			for i, char := range slug {
				if !strings.ContainsRune(Alphanumeric, char) {
					t.Errorf("Generate(%d) produced invalid character %c at position %d", length, char, i)
				}
			}
		}
	})

	t.Run("never repeats a character within a slug", func(t *testing.T) {
		gen := New()

		for i := 0; i < 200; i++ {
			slug, err := gen.Generate(6)
			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			seen := make(map[rune]bool)
			for _, c := range slug {
				if seen[c] {
					t.Fatalf("slug %q repeats character %c", slug, c)
				}
				seen[c] = true
			}
		}
	})

	t.Run("full length is a permutation of the alphabet", func(t *testing.T) {
		gen := New()

		slug, err := gen.Generate(len(Alphanumeric))
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		for _, c := range Alphanumeric {
			if !strings.ContainsRune(slug, c) {
				t.Errorf("slug %q is missing %c", slug, c)
			}
		}
	})

	t.Run("returns error for non-positive length", func(t *testing.T) {
		gen := New()

		for _, length := range []int{0, -1} {
			_, err := gen.Generate(length)
			if err == nil {
				t.Fatalf("Generate(%d) expected error, got nil", length)
			}
			if got, want := err.Error(), "length must be positive"; got != want {
				t.Errorf("error message = %q, want %q", got, want)
			}
		}
	})

	t.Run("returns error when length exceeds alphabet", func(t *testing.T) {
		gen := New()

		if _, err := gen.Generate(len(Alphanumeric) + 1); err == nil {
			t.Error("Generate() expected error, got nil")
		}
	})

	t.Run("concurrent generation is safe", func(t *testing.T) {
		gen := New()
		const goroutines = 50
		const iterations = 100

		var wg sync.WaitGroup
		results := make(chan string, goroutines*iterations)
		errChan := make(chan error, goroutines*iterations)

		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < iterations; j++ {
					slug, err := gen.Generate(8)
					if err != nil {
						errChan <- err
						return
					}
					results <- slug
				}
			}()
		}

		wg.Wait()
		close(results)
		close(errChan)

		for err := range errChan {
			t.Errorf("concurrent Generate() error: %v", err)
		}

		count := 0
		for slug := range results {
			count++
			if len(slug) != 8 {
				t.Errorf("slug %q has length %d, want 8", slug, len(slug))
			}
		}
		if count != goroutines*iterations {
			t.Errorf("expected %d slugs, got %d", goroutines*iterations, count)
		}
	})
}

func TestNewWithAlphabet(t *testing.T) {
	tests := []struct {
		name     string
		alphabet string
		wantErr  bool
	}{
		{"readable alphabet", Readable, false},
		{"tiny alphabet", "ab", false},
		{"empty alphabet", "", true},
		{"duplicate character", "abca", true},
		{"non-ASCII character", "abé", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewWithAlphabet(tt.alphabet)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewWithAlphabet() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewWithAlphabet() unexpected error: %v", err)
			}
			if gen == nil {
				t.Fatal("NewWithAlphabet() returned nil generator")
			}
		})
	}

	t.Run("readable generator avoids ambiguous characters", func(t *testing.T) {
		gen, err := NewWithAlphabet(Readable)
		if err != nil {
			t.Fatalf("NewWithAlphabet() unexpected error: %v", err)
		}

		for i := 0; i < 100; i++ {
			slug, err := gen.Generate(6)
			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if strings.ContainsAny(slug, "iIlLoO") {
				t.Errorf("slug %q contains an ambiguous character", slug)
			}
		}
	})
}

func TestAlphabets(t *testing.T) {
	tests := []struct {
		name     string
		alphabet string
		size     int
	}{
		{"Alphanumeric", Alphanumeric, 62},
		{"Readable", Readable, 56},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.alphabet) != tt.size {
				t.Errorf("len = %d, want %d", len(tt.alphabet), tt.size)
			}
			seen := make(map[rune]bool)
			for _, c := range tt.alphabet {
				if seen[c] {
					t.Errorf("duplicate character: %c", c)
				}
				seen[c] = true
			}
		})
	}
}

func BenchmarkGenerator_Generate(b *testing.B) {
	gen := New()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := gen.Generate(6); err != nil {
			b.Fatalf("Generate() error: %v", err)
		}
	}
}

func BenchmarkGenerator_Generate_Parallel(b *testing.B) {
	gen := New()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := gen.Generate(6); err != nil {
				b.Fatalf("Generate() error: %v", err)
			}
		}
	})
}
