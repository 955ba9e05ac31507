package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vertext/internal/watcher"
)

func startWatcher(t *testing.T, path string) *watcher.Watcher {
	t.Helper()
	w, err := watcher.New(watcher.Config{
		Path:        path,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, w.Start(), "failed to start watcher")
	return w
}

// waitForPoll polls until a change is reported or the deadline passes.
func waitForPoll(w *watcher.Watcher, d time.Duration) bool {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if w.Poll() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("test"), 0644))

	w := startWatcher(t, path)

	// Rapid writes should coalesce into single notification
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("test%d", i)), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	require.True(t, waitForPoll(w, 500*time.Millisecond), "expected notification")
	require.False(t, waitForPoll(w, 100*time.Millisecond), "unexpected second notification")
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(path, []byte("doc"), 0644))
	require.NoError(t, os.WriteFile(other, []byte("initial"), 0644))

	w := startWatcher(t, path)

	require.NoError(t, os.WriteFile(other, []byte("other content"), 0644))
	require.False(t, waitForPoll(w, 150*time.Millisecond), "should not notify for unrelated files")
}

func TestWatcher_NotifiesOnRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("doc"), 0644))

	w := startWatcher(t, path)

	require.NoError(t, os.Remove(path))
	require.True(t, waitForPoll(w, 500*time.Millisecond), "expected notification for removal")
}

func TestWatcher_SuppressesSelfWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("doc"), 0644))

	w := startWatcher(t, path)

	w.MarkSelfWrite()
	require.NoError(t, os.WriteFile(path, []byte("saved by us"), 0644))
	require.False(t, waitForPoll(w, 150*time.Millisecond), "own writes must not notify")
}

func TestWatcher_PollNeverBlocks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("doc"), 0644))

	w := startWatcher(t, path)

	start := time.Now()
	assert.False(t, w.Poll())
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestWatcher_Stop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("test"), 0644))

	w, err := watcher.New(watcher.DefaultConfig(path))
	require.NoError(t, err)
	require.NoError(t, w.Start())

	done := make(chan struct{})
	go func() {
		assert.NoError(t, w.Stop(), "Stop returned error")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}
}

func TestWatcher_StartMissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig("/nonexistent/dir/notes.txt"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	require.Error(t, w.Start())
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/tmp/notes.txt")
	assert.Equal(t, "/tmp/notes.txt", cfg.Path)
	assert.Equal(t, 500*time.Millisecond, cfg.DebounceDur)
}
