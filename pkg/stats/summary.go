package stats

import (
	"fmt"
	"strings"

	"github.com/Veraticus/rkmatch/pkg/matcher"
)

// Summary describes the matches of a single search.
func Summary(res matcher.Result) string {
	if !res.Found() {
		return "Pattern not found in the text."
	}
	return fmt.Sprintf("Pattern found %d time(s) at positions: %s", len(res.Offsets), formatOffsets(res.Offsets))
}

// FormatResult renders the per-search statistics table.
func FormatResult(res matcher.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Match count:               %d\n", len(res.Offsets))
	fmt.Fprintf(&b, "Text length:               %d\n", res.TextLength)
	fmt.Fprintf(&b, "Pattern length:            %d\n", res.PatternLength)
	fmt.Fprintf(&b, "Hash comparisons:          %d\n", res.HashComparisons)
	fmt.Fprintf(&b, "Verification comparisons:  %d\n", res.VerificationComparisons)
	fmt.Fprintf(&b, "Spurious hits:             %d\n", res.SpuriousHits)
	fmt.Fprintf(&b, "Elapsed:                   %.6fs\n", res.Elapsed.Seconds())
	return b.String()
}

// FormatSnapshot renders totals across all searches.
func FormatSnapshot(s Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Searches:                  %d (%d failed)\n", s.Searches, s.Errors)
	fmt.Fprintf(&b, "Matches:                   %d\n", s.Matches)
	fmt.Fprintf(&b, "Characters scanned:        %d\n", s.Characters)
	fmt.Fprintf(&b, "Hash comparisons:          %d\n", s.HashComparisons)
	fmt.Fprintf(&b, "Verification comparisons:  %d\n", s.VerificationComparisons)
	fmt.Fprintf(&b, "Collision rate:            %.2f%%\n", s.CollisionRate()*100)
	fmt.Fprintf(&b, "Elapsed:                   %.6fs\n", s.Elapsed.Seconds())
	return b.String()
}

func formatOffsets(offsets []int) string {
	parts := make([]string, len(offsets))
	for i, o := range offsets {
		parts[i] = fmt.Sprint(o)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
