package testutil

import (
	"math/big"
	"math/rand"
)

// BruteForce returns every offset (in code points) where pattern occurs in
// text by comparing at every position. An empty pattern matches nowhere.
func BruteForce(text, pattern string) []int {
	t, p := []rune(text), []rune(pattern)
	offsets := []int{}
	if len(p) == 0 {
		return offsets
	}
	for i := 0; i+len(p) <= len(t); i++ {
		match := true
		for j := range p {
			if t[i+j] != p[j] {
				match = false
				break
			}
		}
		if match {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

// PolyHash computes the Horner-rule hash of s with arbitrary precision, so
// it can be used to check the rolling hash independently.
func PolyHash(s string, base, modulus int64) int64 {
	b, m := big.NewInt(base), big.NewInt(modulus)
	h := new(big.Int)
	for _, r := range s {
		h.Mul(h, b)
		h.Add(h, big.NewInt(int64(r)))
		h.Mod(h, m)
	}
	return h.Int64()
}

// CollidingWindows returns up to limit strings of the same length as pattern
// that differ from it but share its hash. They keep the pattern's prefix and
// vary the last two characters over printable ASCII. pattern must have at
// least two characters.
func CollidingWindows(pattern string, base, modulus int64, limit int) []string {
	rs := []rune(pattern)
	if len(rs) < 2 {
		return nil
	}
	prefix := string(rs[:len(rs)-2])
	want := PolyHash(pattern, base, modulus)

	var out []string
	for c1 := rune(' '); c1 <= '~'; c1++ {
		for c2 := rune(' '); c2 <= '~'; c2++ {
			candidate := prefix + string([]rune{c1, c2})
			if candidate == pattern {
				continue
			}
			if PolyHash(candidate, base, modulus) == want {
				out = append(out, candidate)
				if len(out) >= limit {
					return out
				}
			}
		}
	}
	return out
}

// RandomText returns a deterministic pseudo random string of n characters
// drawn from alphabet.
func RandomText(rng *rand.Rand, alphabet string, n int) string {
	as := []rune(alphabet)
	out := make([]rune, n)
	for i := range out {
		out[i] = as[rng.Intn(len(as))]
	}
	return string(out)
}
