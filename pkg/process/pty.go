package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"
)

// PTYManager runs a command under a pseudo terminal and records its output.
// Running under a PTY makes programs that only colour or line-buffer for
// terminals produce the same text a user would see.
type PTYManager struct {
	cmd    *exec.Cmd
	pty    *os.File
	mu     sync.Mutex
	output bytes.Buffer
	copied chan error
}

// Ensure PTYManager implements PTY
var _ PTY = (*PTYManager)(nil)

// NewPTYManager creates a new PTY manager
func NewPTYManager() *PTYManager {
	return &PTYManager{}
}

// Start starts the command with a PTY and begins capturing its output.
func (p *PTYManager) Start(ctx context.Context, command string, args []string, env []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd != nil {
		return fmt.Errorf("process already started")
	}

	// #nosec G204 - the command is supplied by the user on the command line
	p.cmd = exec.CommandContext(ctx, command, args...)
	p.cmd.Env = env

	var err error
	p.pty, err = pty.StartWithSize(p.cmd, &pty.Winsize{Rows: 24, Cols: 512})
	if err != nil {
		return fmt.Errorf("failed to start PTY: %w", err)
	}

	p.copied = make(chan error, 1)
	go func() {
		_, err := io.Copy(&lockedWriter{mu: &p.mu, buf: &p.output}, p.pty)
		p.copied <- err
	}()

	return nil
}

// Wait waits for the process to exit and for all output to be read.
func (p *PTYManager) Wait() error {
	if p.cmd == nil || p.copied == nil {
		return fmt.Errorf("process not started")
	}

	err := p.cmd.Wait()

	// Linux reports EIO on the master side once the child has gone.
	if copyErr := <-p.copied; copyErr != nil && !errors.Is(copyErr, syscall.EIO) && err == nil {
		err = fmt.Errorf("failed to read output: %w", copyErr)
	}

	p.mu.Lock()
	if p.pty != nil {
		_ = p.pty.Close()
	}
	p.mu.Unlock()

	return err
}

// Output returns everything the process has written so far.
func (p *PTYManager) Output() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return bytes.Clone(p.output.Bytes())
}

// ProcessState returns the process state
func (p *PTYManager) ProcessState() *os.ProcessState {
	if p.cmd == nil {
		return nil
	}
	return p.cmd.ProcessState
}

// Process returns the underlying process
func (p *PTYManager) Process() *os.Process {
	if p.cmd == nil {
		return nil
	}
	return p.cmd.Process
}

type lockedWriter struct {
	mu  *sync.Mutex
	buf *bytes.Buffer
}

func (w *lockedWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(b)
}
