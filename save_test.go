// FILE: lixenwraith/flags/save_test.go
package flags_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultScan(t *testing.T) {
	var cfg daemonConfig
	reg := newDaemonRegistry(t, &cfg)
	res, err := resolver(reg, []string{
		"--allocation_interval=500ms",
		"--roles=a,b",
		"--weights=a=2,b=0.5",
		"--cluster=prod",
	}, nil).Resolve()
	require.NoError(t, err)

	var view struct {
		Interval time.Duration      `flag:"allocation_interval"`
		WorkDir  string             `flag:"work_dir"`
		Retries  int                `flag:"retries"`
		Cluster  string             `flag:"cluster"`
		Roles    []string           `flag:"roles"`
		Weights  map[string]float64 `flag:"weights"`
		Creds    *string            `flag:"credentials"`
	}
	require.NoError(t, res.Scan(&view))

	assert.Equal(t, 500*time.Millisecond, view.Interval)
	assert.Equal(t, "/tmp/mesos", view.WorkDir)
	assert.Equal(t, 3, view.Retries)
	assert.Equal(t, "prod", view.Cluster)
	assert.Equal(t, []string{"a", "b"}, view.Roles)
	assert.Equal(t, map[string]float64{"a": 2, "b": 0.5}, view.Weights)
	assert.Nil(t, view.Creds, "unset optionals are left alone")

	assert.Error(t, res.Scan(view), "non-pointer target")

	m := res.Values.Map()
	assert.NotContains(t, m, "credentials")
	assert.Equal(t, "prod", m["cluster"])
}

func TestResultSave(t *testing.T) {
	var cfg daemonConfig
	reg := newDaemonRegistry(t, &cfg)
	res, err := resolver(reg, []string{
		"--allocation_interval=2secs",
		"--work_dir=/srv/mesos",
		"--roles=a,b",
		"--weights=b=3,a=1",
	}, nil).Resolve()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "saved.toml")
	require.NoError(t, res.Save("file://"+path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")

	texts := res.Texts()
	assert.Equal(t, "2secs", texts["allocation_interval"])
	assert.NotContains(t, texts, "cluster")

	// The saved file resolves to the same configuration
	var again daemonConfig
	res2, err := resolver(newDaemonRegistry(t, &again), nil, nil).WithFile(path).Resolve()
	require.NoError(t, err)
	assert.Equal(t, cfg.Interval, again.Interval)
	assert.Equal(t, cfg.WorkDir, again.WorkDir)
	assert.Equal(t, cfg.Roles, again.Roles)
	assert.Equal(t, cfg.Weights, again.Weights)
	assert.Equal(t, cfg.MinMem, again.MinMem)
	assert.True(t, again.Cluster.IsNone())
	assert.Equal(t, flags.SourceFile, res2.Source("work_dir"))
}

func TestResultDebug(t *testing.T) {
	var cfg daemonConfig
	reg := newDaemonRegistry(t, &cfg)
	res, err := resolver(reg, []string{"--work_dir=/srv"}, map[string]string{"MESOS_RETRIES": "4"}).Resolve()
	require.NoError(t, err)

	out := res.Debug()
	assert.Contains(t, out, `work_dir = "/srv" [command line]`)
	assert.Contains(t, out, `retries = "4" [environment]`)
	assert.Contains(t, out, `allocation_interval = "1secs" [default]`)
	assert.Contains(t, out, "cluster: (unset)")
}
