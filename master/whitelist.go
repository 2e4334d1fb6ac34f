// FILE: lixenwraith/flags/master/whitelist.go
package master

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/lixenwraith/flags"
)

// Whitelist is the set of slave hostnames offers are advertised to. The zero
// Whitelist allows every slave.
type Whitelist struct {
	hosts map[string]struct{}
}

// ReadWhitelist loads the whitelist named by the --whitelist value. The
// value "*" allows every slave and reads no file.
func ReadWhitelist(path string) (Whitelist, error) {
	path = flags.NormalizePath(path)
	if path == "" || path == WhitelistAll {
		return Whitelist{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Whitelist{}, fmt.Errorf("failed to read whitelist '%s': %w", path, err)
	}
	return parseWhitelist(data), nil
}

// parseWhitelist reads one hostname per line; blank lines and '#' comments
// are skipped.
func parseWhitelist(data []byte) Whitelist {
	hosts := make(map[string]struct{})
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hosts[line] = struct{}{}
	}
	return Whitelist{hosts: hosts}
}

// All reports whether every slave is allowed.
func (w Whitelist) All() bool { return w.hosts == nil }

// Allows reports whether offers may be sent to host.
func (w Whitelist) Allows(host string) bool {
	if w.All() {
		return true
	}
	_, ok := w.hosts[host]
	return ok
}

// Hosts returns the whitelisted hostnames sorted, nil when all are allowed.
func (w Whitelist) Hosts() []string {
	if w.All() {
		return nil
	}
	hosts := make([]string, 0, len(w.hosts))
	for h := range w.hosts {
		hosts = append(hosts, h)
	}
	slices.Sort(hosts)
	return hosts
}

// WatchWhitelist re-reads the whitelist file whenever it changes and passes
// each successfully parsed version to apply, until ctx is done. It returns
// once the watch is in place, after re-reading the file once so edits made
// since the caller's own ReadWhitelist are not lost. The returned channel
// is closed when the watcher has stopped. A whitelist of "*" is never
// watched. Read failures keep the previous whitelist.
func WatchWhitelist(ctx context.Context, path string, logger *slog.Logger, apply func(Whitelist)) <-chan struct{} {
	path = flags.NormalizePath(path)
	if path == "" || path == WhitelistAll {
		done := make(chan struct{})
		close(done)
		return done
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := flags.DefaultWatchOptions()
	opts.PollInterval = WhitelistWatchInterval
	opts.Debounce = 0
	return watchWhitelist(ctx, path, opts, logger, apply)
}

func watchWhitelist(ctx context.Context, path string, opts flags.WatchOptions, logger *slog.Logger, apply func(Whitelist)) <-chan struct{} {
	// WatchFile takes its baseline before returning; anything written
	// earlier is picked up by this read
	events := flags.WatchFile(ctx, path, opts)
	reloadWhitelist(path, logger, apply)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			switch ev.Kind {
			case flags.WatchChanged:
				reloadWhitelist(path, logger, apply)
			case flags.WatchDeleted:
				logger.Warn("Whitelist file removed, keeping previous", "path", path)
			case flags.WatchPermissions:
				logger.Warn("Whitelist file permissions changed", "path", path)
			case flags.WatchError:
				logger.Warn("Whitelist stat failed", "path", path, "error", ev.Err)
			}
		}
	}()
	return done
}

func reloadWhitelist(path string, logger *slog.Logger, apply func(Whitelist)) {
	wl, err := ReadWhitelist(path)
	if err != nil {
		logger.Warn("Whitelist reload failed, keeping previous", "path", path, "error", err)
		return
	}
	logger.Info("Whitelist reloaded", "path", path, "hosts", len(wl.hosts))
	apply(wl)
}
