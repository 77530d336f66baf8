package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultMaxDepth, cfg.MaxDepth)
	require.False(t, cfg.Strict)
	require.False(t, cfg.DefineOwn)
	require.Equal(t, DefaultSites, cfg.Bench.Sites)
	require.Equal(t, DefaultRounds, cfg.Bench.Rounds)
	require.Equal(t, DefaultWorkers, cfg.Bench.Workers)
	require.Equal(t, []string{"monomorphic", "index", "proxy", "megamorphic"}, cfg.Bench.Workloads)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "propcache.yaml")
	body := `
max_depth: 4
strict: true
bench:
  rounds: 500
  workloads: [monomorphic]
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.MaxDepth)
	require.True(t, cfg.Strict)
	require.Equal(t, 500, cfg.Bench.Rounds)
	require.Equal(t, []string{"monomorphic"}, cfg.Bench.Workloads)
	// Untouched keys keep their defaults.
	require.Equal(t, DefaultSites, cfg.Bench.Sites)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PROPCACHE_MAX_DEPTH", "3")
	t.Setenv("PROPCACHE_BENCH_WORKERS", "9")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 3, cfg.MaxDepth)
	require.Equal(t, 9, cfg.Bench.Workers)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
