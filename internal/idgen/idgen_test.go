package idgen

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestV4_Generate(t *testing.T) {
	gen := NewV4()

	seen := make(map[uuid.UUID]struct{}, 50)
	for i := 0; i < 50; i++ {
		id, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if id.Version() != 4 {
			t.Fatalf("UUID version = %d, want 4", id.Version())
		}
		if _, ok := seen[id]; ok {
			t.Fatalf("generated duplicate UUID: %v", id)
		}
		seen[id] = struct{}{}
	}
}

func TestV7_Generate(t *testing.T) {
	t.Run("generates valid UUID v7", func(t *testing.T) {
		id, err := NewV7().Generate()
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if id == uuid.Nil {
			t.Fatal("generated UUID is nil")
		}
		if id.Version() != 7 {
			t.Fatalf("UUID version = %d, want 7", id.Version())
		}
	})

	t.Run("successive values sort in creation order", func(t *testing.T) {
		gen := NewV7(WithRetries(0))

		prev, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		for i := 0; i < 100; i++ {
			next, err := gen.Generate()
			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if next.String() <= prev.String() {
				t.Fatalf("v7 ids out of order: %s then %s", prev, next)
			}
			prev = next
		}
	})

	t.Run("ignores negative retries", func(t *testing.T) {
		g := NewV7(WithRetries(-3)).(*v7Gen)
		if g.maxRetries != 1 {
			t.Errorf("maxRetries = %d, want 1", g.maxRetries)
		}
	})
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		version Version
		want    uuid.Version
	}{
		{"unknown defaults to v4", 0, 4},
		{"v4", V4, 4},
		{"v7", V7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := New(tt.version).Generate()
			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if id.Version() != tt.want {
				t.Fatalf("UUID version = %d, want %d", id.Version(), tt.want)
			}
		})
	}
}

func TestGeneratorFunc(t *testing.T) {
	want := uuid.MustParse("01890a5d-ac96-774b-bcce-b302099a8057")
	gen := GeneratorFunc(func() (uuid.UUID, error) { return want, nil })

	got, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("Generate() = %v, want %v", got, want)
	}

	boom := errors.New("entropy exhausted")
	failing := GeneratorFunc(func() (uuid.UUID, error) { return uuid.Nil, boom })
	if _, err := failing.Generate(); !errors.Is(err, boom) {
		t.Errorf("Generate() error = %v, want %v", err, boom)
	}
}
