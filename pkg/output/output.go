// Package output delivers search reports to the terminal and to files.
package output

import (
	"errors"

	"github.com/Veraticus/rkmatch/pkg/matcher"
)

// Report is the outcome of searching one source.
type Report struct {
	Source  string
	Pattern string
	Text    string
	Result  matcher.Result
}

// Sink receives reports.
type Sink interface {
	Send(r Report) error
}

// MultiSink sends every report to each of its sinks.
type MultiSink []Sink

// Send delivers r to every sink and joins their errors.
func (m MultiSink) Send(r Report) error {
	var errs []error
	for _, s := range m {
		if err := s.Send(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
