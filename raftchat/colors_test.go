package raftchat

import (
	"fmt"
	"strings"
	"testing"
)

func TestColorForDeterministic(t *testing.T) {
	for _, user := range []string{"", "alice", "bob", "user 40"} {
		first := ColorFor(user)
		for i := 0; i < 3; i++ {
			if got := ColorFor(user); got != first {
				t.Fatalf("color for %q changed: %q vs %q", user, got, first)
			}
		}
	}
}

// Known values pinned against the reference web client's hash.
func TestColorIndexKnownValues(t *testing.T) {
	cases := []struct {
		user string
		idx  int
	}{
		{"", 0},
		{"alice", 20},
		{"bob", 32},
		{"General", 12},
		{"user 40", 26},
	}
	for _, tc := range cases {
		if got := colorIndex(tc.user); got != tc.idx {
			t.Fatalf("colorIndex(%q) = %d, want %d", tc.user, got, tc.idx)
		}
	}
}

func TestColorIndexInRange(t *testing.T) {
	users := []string{"", "a", "Ω-room", strings.Repeat("x", 1000)}
	for i := 0; i < 200; i++ {
		users = append(users, fmt.Sprintf("user-%d", i))
	}
	for _, u := range users {
		idx := colorIndex(u)
		if idx < 0 || idx >= len(palette) {
			t.Fatalf("colorIndex(%q) = %d out of range [0,%d)", u, idx, len(palette))
		}
	}
}

func TestColorSpread(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 200; i++ {
		seen[ColorFor(fmt.Sprintf("user-%d", i))] = struct{}{}
	}
	if len(seen) < len(palette)/2 {
		t.Fatalf("only %d distinct colors over 200 usernames", len(seen))
	}
}
