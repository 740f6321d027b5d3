package testutil

import (
	"math/rand"
	"testing"
)

func TestBruteForce(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pattern string
		want    []int
	}{
		{name: "two matches", text: "abracadabra", pattern: "abra", want: []int{0, 7}},
		{name: "overlapping", text: "aaaaa", pattern: "aa", want: []int{0, 1, 2, 3}},
		{name: "empty pattern", text: "abc", pattern: "", want: []int{}},
		{name: "longer pattern", text: "ab", pattern: "abc", want: []int{}},
		{name: "code points", text: "héhé", pattern: "hé", want: []int{0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BruteForce(tt.text, tt.pattern)
			if len(got) != len(tt.want) {
				t.Fatalf("BruteForce(%q, %q) = %v, want %v", tt.text, tt.pattern, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("offset %d: got %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPolyHash(t *testing.T) {
	// 'a' = 97, 'b' = 98: (97*256 + 98) mod 101
	want := int64((97*256 + 98) % 101)
	if got := PolyHash("ab", 256, 101); got != want {
		t.Errorf("PolyHash(ab) = %d, want %d", got, want)
	}
	if got := PolyHash("", 256, 101); got != 0 {
		t.Errorf("PolyHash(\"\") = %d, want 0", got)
	}
}

func TestCollidingWindows(t *testing.T) {
	pattern := "abra"
	windows := CollidingWindows(pattern, 256, 101, 10)
	if len(windows) != 10 {
		t.Fatalf("expected 10 colliding windows but got %d", len(windows))
	}

	want := PolyHash(pattern, 256, 101)
	for _, w := range windows {
		if w == pattern {
			t.Errorf("colliding window equals the pattern")
		}
		if len([]rune(w)) != len([]rune(pattern)) {
			t.Errorf("window %q has the wrong length", w)
		}
		if got := PolyHash(w, 256, 101); got != want {
			t.Errorf("window %q hashes to %d, want %d", w, got, want)
		}
	}

	if got := CollidingWindows("a", 256, 101, 10); got != nil {
		t.Errorf("expected nil for a one character pattern, got %v", got)
	}
}

func TestRandomText(t *testing.T) {
	a := RandomText(rand.New(rand.NewSource(1)), "ab", 32)
	b := RandomText(rand.New(rand.NewSource(1)), "ab", 32)
	if a != b {
		t.Errorf("same seed produced %q and %q", a, b)
	}
	for _, r := range a {
		if r != 'a' && r != 'b' {
			t.Errorf("unexpected character %q", r)
		}
	}
}
