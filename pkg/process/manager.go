// Package process captures the output of external commands so it can be
// searched like any other text.
package process

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Manager runs commands and returns their terminal output.
type Manager struct {
	newPTY func() PTY
	env    []string
}

// NewManager creates a new process manager
func NewManager() *Manager {
	return &Manager{
		newPTY: func() PTY { return NewPTYManager() },
		env:    os.Environ(),
	}
}

// ExitCode returns the exit code of a finished process, or -1.
func ExitCode(p PTY) int {
	if state := p.ProcessState(); state != nil {
		return state.ExitCode()
	}
	return -1
}

// Capture runs command with args and returns everything it printed, with
// terminal line endings normalised to "\n". A non-zero exit is reported as an
// error together with the captured output.
func (m *Manager) Capture(ctx context.Context, command string, args []string) (string, error) {
	p := m.newPTY()

	if err := p.Start(ctx, command, args, m.env); err != nil {
		return "", fmt.Errorf("failed to start process: %w", err)
	}

	err := p.Wait()
	out := normalizeNewlines(string(p.Output()))
	if err != nil {
		return out, fmt.Errorf("%s exited with code %d: %w", command, ExitCode(p), err)
	}
	return out, nil
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
