// FILE: lixenwraith/flags/watch_test.go
package flags

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastWatch() WatchOptions {
	return WatchOptions{
		PollInterval:      MinPollInterval,
		Debounce:          50 * time.Millisecond,
		VerifyPermissions: true,
	}
}

func nextEvent(t *testing.T, events <-chan WatchEvent) WatchEvent {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "channel closed early")
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watch event")
		return WatchEvent{}
	}
}

// touch rewrites path with content and bumps its mtime so the change is
// visible even on filesystems with coarse timestamps.
func touch(t *testing.T, path, content string, at time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	require.NoError(t, os.Chtimes(path, at, at))
}

func TestWatchFile(t *testing.T) {
	t.Run("ChangeDebouncedIntoOneEvent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "whitelist")
		touch(t, path, "a\n", time.Now().Add(-time.Hour))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		opts := fastWatch()
		opts.Debounce = 500 * time.Millisecond
		events := WatchFile(ctx, "file://"+path, opts)

		touch(t, path, "a\nb\n", time.Now().Add(-30*time.Minute))
		time.Sleep(150 * time.Millisecond)
		touch(t, path, "a\nb\nc\n", time.Now())

		ev := nextEvent(t, events)
		assert.Equal(t, WatchChanged, ev.Kind)
		assert.Equal(t, path, ev.Path)

		select {
		case extra := <-events:
			t.Fatalf("unexpected second event %+v", extra)
		case <-time.After(2 * opts.Debounce):
		}
	})

	t.Run("Deleted", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "whitelist")
		touch(t, path, "a\n", time.Now())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		events := WatchFile(ctx, path, fastWatch())

		require.NoError(t, os.Remove(path))
		assert.Equal(t, WatchDeleted, nextEvent(t, events).Kind)
	})

	t.Run("AppearsLater", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "whitelist")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		events := WatchFile(ctx, path, fastWatch())

		touch(t, path, "a\n", time.Now())
		assert.Equal(t, WatchChanged, nextEvent(t, events).Kind)
	})

	t.Run("PermissionChange", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("permission bits not meaningful on Windows")
		}
		path := filepath.Join(t.TempDir(), "credentials")
		touch(t, path, "p s\n", time.Now())
		require.NoError(t, os.Chmod(path, 0600))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		events := WatchFile(ctx, path, fastWatch())

		require.NoError(t, os.Chmod(path, 0644))
		assert.Equal(t, WatchPermissions, nextEvent(t, events).Kind)
	})

	t.Run("ClosedWhenContextEnds", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "whitelist")
		ctx, cancel := context.WithCancel(context.Background())
		events := WatchFile(ctx, path, WatchOptions{})
		cancel()

		select {
		case _, ok := <-events:
			assert.False(t, ok)
		case <-time.After(3 * time.Second):
			t.Fatal("channel not closed after cancel")
		}
	})
}

func TestDefaultWatchOptions(t *testing.T) {
	opts := DefaultWatchOptions()
	assert.Equal(t, DefaultPollInterval, opts.PollInterval)
	assert.Equal(t, DefaultDebounce, opts.Debounce)
	assert.True(t, opts.VerifyPermissions)
}
