package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/rkmatch/pkg/matcher"
	"github.com/Veraticus/rkmatch/pkg/report"
)

func abraReport(t *testing.T) Report {
	t.Helper()
	text, pattern := "abracadabra", "abra"
	res, err := matcher.Search(matcher.Input{Text: text, Pattern: pattern, Options: matcher.DefaultOptions()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return Report{Source: "spell.txt", Pattern: pattern, Text: text, Result: res}
}

func TestStdoutSink_Send(t *testing.T) {
	tests := []struct {
		name         string
		style        report.Style
		showStats    bool
		showHeaders  bool
		wantContains []string
		wantMissing  []string
	}{
		{
			name:  "display style",
			style: report.Display,
			wantContains: []string{
				"Pattern found 2 time(s) at positions: [0, 7]\n",
				"**:red[abra]**cad**:red[abra]**\n",
			},
			wantMissing: []string{"Match count", "==>"},
		},
		{
			name:      "export style with stats",
			style:     report.Export,
			showStats: true,
			wantContains: []string{
				"<<abra>>cad<<abra>>\n",
				"Match count:               2",
				"Text length:               11",
			},
		},
		{
			name:         "headers",
			style:        report.Export,
			showHeaders:  true,
			wantContains: []string{"==> spell.txt <==\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			sink := NewStdoutSink(buf, WrapStyle(tt.style), tt.showStats, tt.showHeaders)

			if err := sink.Send(abraReport(t)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			out := buf.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(out, want) {
					t.Errorf("expected output to contain %q, got %q", want, out)
				}
			}
			for _, missing := range tt.wantMissing {
				if strings.Contains(out, missing) {
					t.Errorf("expected output not to contain %q, got %q", missing, out)
				}
			}
		})
	}
}

func TestStdoutSink_NotFound(t *testing.T) {
	buf := &bytes.Buffer{}
	sink := NewStdoutSink(buf, WrapStyle(report.Export), false, false)

	err := sink.Send(Report{Source: "x", Pattern: "zzz", Text: "abc", Result: matcher.Result{TextLength: 3, PatternLength: 3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "Pattern not found in the text.\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestFileSink_Single(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highlighted_matches.txt")
	sink := NewFileSink(path)

	if err := sink.Send(abraReport(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if string(data) != "<<abra>>cad<<abra>>" {
		t.Errorf("unexpected export %q", data)
	}
	if sink.Path() != path {
		t.Errorf("unexpected path %s", sink.Path())
	}

	// No temp files left behind
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the export file, found %d entries", len(entries))
	}
}

func TestFileSink_Multiple(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	sink := NewFileSink(path)

	first := abraReport(t)
	second := Report{Source: "empty.txt", Pattern: "abra", Text: "nothing here"}
	_ = sink.Send(first)
	_ = sink.Send(second)

	if err := sink.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := os.ReadFile(path)
	want := "==> spell.txt <==\n<<abra>>cad<<abra>>\n==> empty.txt <==\nnothing here"
	if string(data) != want {
		t.Errorf("expected %q but got %q", want, data)
	}
}

func TestFileSink_ReplacesSameSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	sink := NewFileSink(path)

	_ = sink.Send(Report{Source: "a.txt", Pattern: "x", Text: "old"})
	_ = sink.Send(abraReport(t))
	_ = sink.Send(Report{Source: "a.txt", Pattern: "x", Text: "new x", Result: matcher.Result{Offsets: []int{4}}})

	if err := sink.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := os.ReadFile(path)
	want := "==> a.txt <==\nnew <<x>>\n==> spell.txt <==\n<<abra>>cad<<abra>>"
	if string(data) != want {
		t.Errorf("expected %q but got %q", want, data)
	}
}

func TestFileSink_BadDirectory(t *testing.T) {
	sink := NewFileSink(filepath.Join(t.TempDir(), "missing", "out.txt"))
	_ = sink.Send(abraReport(t))
	if err := sink.Close(); err == nil {
		t.Error("expected error for a missing directory")
	}
}

type failingSink struct{ err error }

func (f failingSink) Send(Report) error { return f.err }

func TestMultiSink(t *testing.T) {
	buf := &bytes.Buffer{}
	boom := errors.New("boom")
	multi := MultiSink{
		NewStdoutSink(buf, WrapStyle(report.Export), false, false),
		failingSink{err: boom},
	}

	err := multi.Send(abraReport(t))
	if !errors.Is(err, boom) {
		t.Errorf("expected joined error to contain boom, got %v", err)
	}
	if !strings.Contains(buf.String(), "<<abra>>") {
		t.Error("expected the first sink to receive the report despite the failure")
	}

	if err := (MultiSink{}).Send(abraReport(t)); err != nil {
		t.Errorf("empty MultiSink should not fail: %v", err)
	}
}
