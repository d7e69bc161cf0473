package ident

import (
	"sort"
	"testing"
)

func TestNewIsMonotonic(t *testing.T) {
	ids := make([]string, 0, 64)
	for range 64 {
		ids = append(ids, New())
	}

	if !sort.StringsAreSorted(ids) {
		t.Fatalf("expected identifiers in issue order, got %v", ids)
	}

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate identifier %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestValid(t *testing.T) {
	cases := map[string]bool{
		New():                        true,
		"":                           false,
		"not-a-ulid":                 false,
		"6523f1b2c9e77a0d4c8b4567":   false,
		"01ARZ3NDEKTSV4RRFFQ69G5FAV": true,
	}
	for input, want := range cases {
		if got := Valid(input); got != want {
			t.Fatalf("Valid(%q) = %v, want %v", input, got, want)
		}
	}
}
