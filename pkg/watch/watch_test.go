package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherCallsOnWrite(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "watched.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(watched, []byte("v1"), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 10)
	w := New(20*time.Millisecond, nil)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, []string{watched}, func(path string) { changed <- path })
	}()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0600))
	require.NoError(t, os.WriteFile(watched, []byte("v2"), 0600))

	select {
	case p := <-changed:
		assert.Equal(t, watched, p)
	case <-time.After(2 * time.Second):
		t.Fatal("callback was not called after a write")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	for {
		select {
		case p := <-changed:
			assert.Equal(t, watched, p, "unwatched file triggered the callback")
		default:
			return
		}
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w := New(DefaultDebounce, nil)
	err := w.Run(context.Background(), []string{filepath.Join(t.TempDir(), "nope", "file.txt")}, func(string) {})
	assert.Error(t, err)
}
