package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Veraticus/rkmatch/pkg/report"
)

// FileSink collects export-style annotated texts and writes them to a file
// on Close. When more than one source was reported each text is preceded by
// a "==> name <==" header.
type FileSink struct {
	path    string
	style   report.Style
	mu      sync.Mutex
	reports []Report
}

// NewFileSink creates a sink that writes to path using the export style.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path, style: report.Export}
}

// Send implements Sink. A later report for the same source replaces the
// earlier one.
func (f *FileSink) Send(r Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.reports {
		if f.reports[i].Source == r.Source {
			f.reports[i] = r
			return nil
		}
	}
	f.reports = append(f.reports, r)
	return nil
}

// Path returns the destination file.
func (f *FileSink) Path() string {
	return f.path
}

// Close writes the collected reports. The file is replaced atomically.
func (f *FileSink) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var b strings.Builder
	for i, r := range f.reports {
		if len(f.reports) > 1 {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "==> %s <==\n", r.Source)
		}
		b.WriteString(report.AnnotateStyle(r.Text, r.Pattern, r.Result.Offsets, f.style))
	}

	return writeFileAtomic(f.path, []byte(b.String()))
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	tmpName := tmp.Name()
	_ = tmp.Chmod(0o644)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write export file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
