// FILE: lixenwraith/flags/cmd/flagdoc/main_test.go
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagdoc(t *testing.T) {
	t.Run("MarkdownToStdout", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		require.Equal(t, 0, run(nil, &stdout, &stderr), stderr.String())
		assert.Contains(t, stdout.String(), "| `--work_dir=VALUE` | string | `/tmp/mesos` | `MESOS_WORK_DIR` |")
		assert.Contains(t, stdout.String(), "`--[no-]authenticate`")
	})

	t.Run("TOMLToFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "master.toml")
		var stdout, stderr bytes.Buffer
		require.Equal(t, 0, run([]string{"--format=toml", "--output", path}, &stdout, &stderr), stderr.String())
		assert.Empty(t, stdout.String())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `allocation_interval = "1secs"`)
		assert.Contains(t, string(data), `# cluster = ""`)
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 1, run([]string{"--format=html"}, &stdout, &stderr))
		assert.Contains(t, stderr.String(), `flag "format" (command line): range error`)
	})

	t.Run("Help", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 0, run([]string{"--help"}, &stdout, &stderr))
		assert.Contains(t, stdout.String(), "--format=VALUE")
	})
}
