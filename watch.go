// FILE: lixenwraith/flags/watch.go
package flags

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"
)

// WatchKind classifies a file watch event.
type WatchKind string

const (
	WatchChanged     WatchKind = "changed"
	WatchDeleted     WatchKind = "deleted"
	WatchPermissions WatchKind = "permissions_changed"
	WatchError       WatchKind = "error"
)

// WatchOptions configures file watching behavior
type WatchOptions struct {
	// PollInterval for file stat checks (minimum 100ms)
	PollInterval time.Duration

	// Debounce duration to coalesce rapid writes into one event
	Debounce time.Duration

	// VerifyPermissions reports group/world permission changes instead of
	// treating them as content changes
	VerifyPermissions bool
}

// DefaultWatchOptions returns sensible defaults for file watching
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		PollInterval:      DefaultPollInterval,
		Debounce:          DefaultDebounce,
		VerifyPermissions: true,
	}
}

// WatchEvent reports one observed change of the watched file.
type WatchEvent struct {
	Path string
	Kind WatchKind
	Err  error // set for WatchError
}

// fileState is the stat snapshot compared between polls.
type fileState struct {
	modTime time.Time
	size    int64
	mode    os.FileMode
	exists  bool
}

func statFile(path string) (fileState, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fileState{}, nil
		}
		return fileState{}, err
	}
	return fileState{modTime: info.ModTime(), size: info.Size(), mode: info.Mode(), exists: true}, nil
}

// watcher polls one file and feeds a single subscriber channel.
type watcher struct {
	path string
	opts WatchOptions
	last fileState
	out  chan WatchEvent

	mu            sync.Mutex
	debounceTimer *time.Timer
	closed        bool
}

// WatchFile polls path for changes until ctx is done and returns a channel
// of events. The channel is closed after ctx ends. A file that does not exist
// yet is reported as changed once it appears.
func WatchFile(ctx context.Context, path string, opts WatchOptions) <-chan WatchEvent {
	if opts.PollInterval < MinPollInterval {
		opts.PollInterval = MinPollInterval
	}
	if opts.Debounce < 0 {
		opts.Debounce = 0
	}

	w := &watcher{
		path: NormalizePath(path),
		opts: opts,
		out:  make(chan WatchEvent, watchBuffer),
	}
	// Initial state; a stat error here resurfaces on the first poll
	w.last, _ = statFile(w.path)

	go w.loop(ctx)
	return w.out
}

// loop is the main file watching loop
func (w *watcher) loop(ctx context.Context) {
	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.close()
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// check compares the current stat snapshot with the last one
func (w *watcher) check() {
	cur, err := statFile(w.path)
	if err != nil {
		w.emit(WatchEvent{Path: w.path, Kind: WatchError, Err: err})
		return
	}

	prev := w.last
	switch {
	case prev.exists && !cur.exists:
		w.last = cur
		w.stopDebounce()
		w.emit(WatchEvent{Path: w.path, Kind: WatchDeleted})
		return
	case !cur.exists:
		return
	}

	// SECURITY: group/world permission changes are reported, never reloaded
	if w.opts.VerifyPermissions && prev.exists && (cur.mode&0077) != (prev.mode&0077) {
		w.last = cur
		w.emit(WatchEvent{Path: w.path, Kind: WatchPermissions})
		return
	}

	if prev.exists && cur.modTime.Equal(prev.modTime) && cur.size == prev.size {
		w.last = cur
		return
	}
	w.last = cur

	// Debounce rapid changes
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.opts.Debounce, func() {
		w.emit(WatchEvent{Path: w.path, Kind: WatchChanged})
	})
}

// emit delivers ev without blocking; a full channel drops the event
func (w *watcher) emit(ev WatchEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.out <- ev:
	default:
	}
}

func (w *watcher) stopDebounce() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
}

// close stops the debounce timer and closes the channel exactly once
func (w *watcher) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	if !w.closed {
		w.closed = true
		close(w.out)
	}
}
