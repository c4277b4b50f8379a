package slugify

import (
	"context"
	"testing"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Bikers":        "bikers",
		"Hello World":   "hello-world",
		"  Go & Mongo ": "go-and-mongo",
	}
	for in, want := range cases {
		if got := Make(in); got != want {
			t.Errorf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMakeUnique_SuffixRetry(t *testing.T) {
	taken := map[string]bool{"hello-world": true, "hello-world-1": true}
	exists := func(_ context.Context, s string) (bool, error) { return taken[s], nil }

	s, err := MakeUnique(context.Background(), "Hello World", exists)
	if err != nil {
		t.Fatalf("MakeUnique: %v", err)
	}
	if s != "hello-world-2" {
		t.Errorf("slug = %q, want hello-world-2", s)
	}
}

func TestMakeUnique_NoCollision(t *testing.T) {
	exists := func(_ context.Context, s string) (bool, error) { return false, nil }
	s, err := MakeUnique(context.Background(), "Bikers", exists)
	if err != nil {
		t.Fatalf("MakeUnique: %v", err)
	}
	if s != "bikers" {
		t.Errorf("slug = %q, want bikers", s)
	}
}
