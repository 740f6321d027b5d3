package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Veraticus/rkmatch/pkg/report"
	"github.com/Veraticus/rkmatch/pkg/stats"
)

// StdoutSink prints the match summary, the highlighted text and optionally
// the search statistics.
type StdoutSink struct {
	w           io.Writer
	wrap        func(string) string
	showStats   bool
	showHeaders bool
	mu          sync.Mutex
}

// NewStdoutSink creates a sink writing to w (os.Stdout when nil). wrap
// renders each matched span.
func NewStdoutSink(w io.Writer, wrap func(string) string, showStats, showHeaders bool) *StdoutSink {
	if w == nil {
		w = os.Stdout
	}
	return &StdoutSink{
		w:           w,
		wrap:        wrap,
		showStats:   showStats,
		showHeaders: showHeaders,
	}
}

// WrapStyle returns a wrap function placing s's delimiters around a span.
func WrapStyle(s report.Style) func(string) string {
	return func(span string) string {
		return s.Open + span + s.Close
	}
}

// Send implements Sink.
func (s *StdoutSink) Send(r Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.showHeaders {
		if _, err := fmt.Fprintf(s.w, "==> %s <==\n", r.Source); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(s.w, stats.Summary(r.Result)); err != nil {
		return err
	}

	if r.Result.Found() {
		annotated := report.AnnotateFunc(r.Text, r.Pattern, r.Result.Offsets, s.wrap)
		if _, err := fmt.Fprintln(s.w, annotated); err != nil {
			return err
		}
	}

	if s.showStats {
		if _, err := fmt.Fprint(s.w, stats.FormatResult(r.Result)); err != nil {
			return err
		}
	}

	return nil
}
