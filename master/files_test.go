// FILE: lixenwraith/flags/master/files_test.go
package master

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	require.NoError(t, os.Chmod(path, perm))
	return path
}

func TestReadWhitelist(t *testing.T) {
	t.Run("AllSlaves", func(t *testing.T) {
		wl, err := ReadWhitelist("*")
		require.NoError(t, err)
		assert.True(t, wl.All())
		assert.True(t, wl.Allows("anything"))
		assert.Nil(t, wl.Hosts())
	})

	t.Run("File", func(t *testing.T) {
		path := writeTemp(t, "whitelist", "# slaves\nslave2.example.com\n\n  slave1.example.com \nslave2.example.com\n", 0644)
		wl, err := ReadWhitelist("file://" + path)
		require.NoError(t, err)
		assert.False(t, wl.All())
		assert.True(t, wl.Allows("slave1.example.com"))
		assert.False(t, wl.Allows("slave3.example.com"))
		assert.Equal(t, []string{"slave1.example.com", "slave2.example.com"}, wl.Hosts())
	})

	t.Run("EmptyFileAllowsNobody", func(t *testing.T) {
		wl, err := ReadWhitelist(writeTemp(t, "whitelist", "", 0644))
		require.NoError(t, err)
		assert.False(t, wl.All())
		assert.False(t, wl.Allows("slave1"))
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := ReadWhitelist(filepath.Join(t.TempDir(), "absent"))
		assert.Error(t, err)
	})
}

func TestWatchWhitelist(t *testing.T) {
	path := writeTemp(t, "whitelist", "slave1\n", 0644)
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var applied []Whitelist
	last := func() (Whitelist, int) {
		mu.Lock()
		defer mu.Unlock()
		if len(applied) == 0 {
			return Whitelist{}, 0
		}
		return applied[len(applied)-1], len(applied)
	}

	opts := flags.WatchOptions{PollInterval: flags.MinPollInterval}
	done := watchWhitelist(ctx, path, opts, slog.Default(), func(wl Whitelist) {
		mu.Lock()
		applied = append(applied, wl)
		mu.Unlock()
	})

	// The initial re-read happens before the watch returns
	wl, n := last()
	require.Equal(t, 1, n)
	assert.Equal(t, []string{"slave1"}, wl.Hosts())

	// A write right after the watch returns is never folded into the baseline
	require.NoError(t, os.WriteFile(path, []byte("slave1\nslave2\n"), 0644))
	assert.Eventually(t, func() bool {
		wl, _ := last()
		return wl.Allows("slave2")
	}, 3*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop")
	}

	// "*" is never watched
	all := WatchWhitelist(context.Background(), WhitelistAll, nil, func(Whitelist) {
		t.Fatal("unexpected apply")
	})
	_, open := <-all
	assert.False(t, open)
}

func TestWatchWhitelistCatchesEarlierEdit(t *testing.T) {
	path := writeTemp(t, "whitelist", "slave1\n", 0644)
	initial, err := ReadWhitelist(path)
	require.NoError(t, err)

	// Edited between the startup read and the watch being installed
	require.NoError(t, os.WriteFile(path, []byte("slave3\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	current := initial
	done := WatchWhitelist(ctx, path, slog.Default(), func(wl Whitelist) { current = wl })
	assert.True(t, current.Allows("slave3"))
	assert.False(t, current.Allows("slave1"))

	cancel()
	<-done
}

func TestReadCredentials(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		path := writeTemp(t, "credentials", "alice secret1\n\n bob\tsecret2 \n", 0600)
		creds, err := ReadCredentials("file://" + path)
		require.NoError(t, err)
		assert.Equal(t, []Credential{
			{Principal: "alice", Secret: "secret1"},
			{Principal: "bob", Secret: "secret2"},
		}, creds)

		insecure, err := InsecurePermissions(path)
		require.NoError(t, err)
		assert.False(t, insecure)
	})

	t.Run("Malformed", func(t *testing.T) {
		path := writeTemp(t, "credentials", "alice\nbob secret extra\ncarol ok\n", 0600)
		_, err := ReadCredentials(path)
		require.ErrorIs(t, err, flags.ErrFileFormat)
		assert.Contains(t, err.Error(), path+":1")
		assert.Contains(t, err.Error(), path+":2")
		assert.NotContains(t, err.Error(), path+":3")
	})

	t.Run("WorldReadable", func(t *testing.T) {
		path := writeTemp(t, "credentials", "alice secret\n", 0644)
		insecure, err := InsecurePermissions(path)
		require.NoError(t, err)
		assert.True(t, insecure)
	})

	t.Run("MissingOrDirectory", func(t *testing.T) {
		dir := t.TempDir()
		_, err := ReadCredentials(filepath.Join(dir, "absent"))
		assert.Error(t, err)
		_, err = ReadCredentials(dir)
		assert.ErrorContains(t, err, "is a directory")
	})

	t.Run("StartupCheck", func(t *testing.T) {
		f := Flags{Authenticate: true, Credentials: flags.Some("/etc/mesos/credentials")}
		path, err := f.CredentialsFile()
		require.NoError(t, err)
		assert.Equal(t, "/etc/mesos/credentials", path)
	})
}
