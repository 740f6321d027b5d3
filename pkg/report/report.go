// Package report renders match offsets as an annotated copy of the text.
package report

import "strings"

// Style is a pair of delimiters placed around every matched span.
type Style struct {
	Name  string
	Open  string
	Close string
}

var (
	// Display wraps matches in markdown emphasis for rendered output.
	Display = Style{Name: "display", Open: "**:red[", Close: "]**"}
	// Export wraps matches in plain-text brackets for saved files.
	Export = Style{Name: "export", Open: "<<", Close: ">>"}
)

// StyleByName returns the delimiter style with the given name.
func StyleByName(name string) (Style, bool) {
	switch name {
	case Display.Name:
		return Display, true
	case Export.Name:
		return Export, true
	}
	return Style{}, false
}

// Annotate copies text, wrapping each span [offset, offset+len(pattern)) in
// open and close. Offsets and lengths are in code points.
func Annotate(text, pattern string, offsets []int, open, close string) string {
	return AnnotateFunc(text, pattern, offsets, func(s string) string {
		return open + s + close
	})
}

// AnnotateStyle is Annotate using the delimiters of s.
func AnnotateStyle(text, pattern string, offsets []int, s Style) string {
	return Annotate(text, pattern, offsets, s.Open, s.Close)
}

// AnnotateFunc copies text, replacing each matched span with wrap(span).
//
// After a span the copy resumes at offset+len(pattern). Overlapping matches
// therefore repeat the shared characters in each wrapped span, and text
// between them is never emitted twice. Offsets outside the text are skipped.
func AnnotateFunc(text, pattern string, offsets []int, wrap func(string) string) string {
	rs := []rune(text)
	m := len([]rune(pattern))
	if m == 0 || len(offsets) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(offsets)*8)

	last := 0
	for _, off := range offsets {
		if off < 0 || off+m > len(rs) {
			continue
		}
		if off > last {
			b.WriteString(string(rs[last:off]))
		}
		b.WriteString(wrap(string(rs[off : off+m])))
		last = off + m
	}
	if last < len(rs) {
		b.WriteString(string(rs[last:]))
	}
	return b.String()
}
