// Package matcher finds every occurrence of a pattern in a text with the
// Rabin-Karp algorithm. A rolling hash filters candidate windows and every
// candidate is verified character by character, so hash collisions never
// produce false positives.
//
// Characters are Unicode code points. Offsets and lengths in a Result count
// code points, not bytes.
package matcher

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

const (
	// DefaultBase is the radix used when weighting characters in the hash.
	DefaultBase = 256
	// DefaultModulus is deliberately small so collisions are common and the
	// verification path is exercised.
	DefaultModulus = 101
)

// Options controls a single search. Modulus is expected to be prime; that is
// a precondition for hash quality and is not checked.
type Options struct {
	CaseSensitive bool
	Base          int64
	Modulus       int64
}

// DefaultOptions returns case sensitive options with the default base and
// modulus.
func DefaultOptions() Options {
	return Options{
		CaseSensitive: true,
		Base:          DefaultBase,
		Modulus:       DefaultModulus,
	}
}

// Validate reports a *ConfigurationError for a base below 2 or a modulus
// below 1.
func (o Options) Validate() error {
	if o.Base < 2 {
		return &ConfigurationError{Field: "base", Value: o.Base, Reason: "must be at least 2"}
	}
	if o.Modulus < 1 {
		return &ConfigurationError{Field: "modulus", Value: o.Modulus, Reason: "must be at least 1"}
	}
	return nil
}

// ConfigurationError is returned when the hash parameters would make the
// arithmetic undefined.
type ConfigurationError struct {
	Field  string
	Value  int64
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

// Input is the text and pattern of one search together with its options.
type Input struct {
	Text    string
	Pattern string
	Options
}

// Result holds the match offsets and the counters gathered during a search.
type Result struct {
	// Offsets are the ascending start positions of every occurrence.
	// Occurrences may overlap.
	Offsets       []int
	TextLength    int
	PatternLength int
	// HashComparisons is the number of window positions examined.
	HashComparisons int
	// VerificationComparisons is the number of characters compared after a
	// hash agreement, including the first mismatching character.
	VerificationComparisons int
	// SpuriousHits counts hash agreements rejected by verification.
	SpuriousHits int
	Elapsed      time.Duration
}

// Found reports whether the pattern occurs at least once.
func (r Result) Found() bool {
	return len(r.Offsets) > 0
}

// Matcher searches a text for all occurrences of a pattern.
type Matcher interface {
	Search(text, pattern string) (Result, error)
	String() string
}

// RabinKarp is a Matcher bound to one set of options.
type RabinKarp struct {
	opts Options
}

// Ensure RabinKarp implements Matcher
var _ Matcher = (*RabinKarp)(nil)

// NewRabinKarp creates a matcher using opts for every search.
func NewRabinKarp(opts Options) *RabinKarp {
	return &RabinKarp{opts: opts}
}

func (rk *RabinKarp) String() string {
	return "RABIN-KARP"
}

// Options returns the options the matcher was created with.
func (rk *RabinKarp) Options() Options {
	return rk.opts
}

// Search finds all occurrences of pattern in text.
func (rk *RabinKarp) Search(text, pattern string) (Result, error) {
	return Search(Input{Text: text, Pattern: pattern, Options: rk.opts})
}

// Search finds all occurrences of in.Pattern in in.Text. It only fails on
// invalid options; a pattern that does not occur yields an empty result.
//
// An empty pattern is defined to match nowhere.
func Search(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	start := time.Now()

	text, pattern := []rune(in.Text), []rune(in.Pattern)
	if !in.CaseSensitive {
		foldRunes(text)
		foldRunes(pattern)
	}

	res := Result{
		TextLength:    len(text),
		PatternLength: len(pattern),
	}

	n, m := len(text), len(pattern)
	if m == 0 || m > n {
		res.Elapsed = time.Since(start)
		return res, nil
	}

	hs := newHasher(uint64(in.Base), uint64(in.Modulus), m)
	pHash := hs.sum(pattern)
	tHash := hs.sum(text[:m])

	for i := 0; i <= n-m; i++ {
		res.HashComparisons++

		if pHash == tHash {
			matched, compared := equalAt(text, i, pattern)
			res.VerificationComparisons += compared
			if matched {
				res.Offsets = append(res.Offsets, i)
			} else {
				res.SpuriousHits++
			}
		}

		if i < n-m {
			tHash = hs.roll(tHash, text[i], text[i+m])
		}
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

// equalAt compares text[i:i+len(pattern)] with pattern in place and returns
// the number of characters it looked at.
func equalAt(text []rune, i int, pattern []rune) (bool, int) {
	for j, r := range pattern {
		if text[i+j] != r {
			return false, j + 1
		}
	}
	return true, len(pattern)
}

// Fold maps s to the canonical case used by case-insensitive search. The
// mapping is per code point, so the result has as many code points as s.
func Fold(s string) string {
	return strings.Map(foldRune, s)
}

func foldRunes(rs []rune) {
	for i, r := range rs {
		rs[i] = foldRune(r)
	}
}

func foldRune(r rune) rune {
	return unicode.ToLower(unicode.ToUpper(r))
}
