package process

import (
	"context"
	"os"
)

// PTY defines the interface for PTY operations
type PTY interface {
	Start(ctx context.Context, command string, args []string, env []string) error
	Wait() error
	Output() []byte
	ProcessState() *os.ProcessState
	Process() *os.Process
}
