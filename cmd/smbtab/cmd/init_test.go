package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smbtab/smbtab/pkg/config"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInitWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	out, err := runCommand(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	loaded, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Store.Backend, loaded.Store.Backend)

	// A second init refuses to clobber without --force.
	_, err = runCommand(t, "init", "--config", path)
	assert.Error(t, err)

	_, err = runCommand(t, "init", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestBuildWithFixtureProbe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := config.DefaultConfig()
	cfg.Store.Backend = "file"
	cfg.Store.DataDir = dir
	require.NoError(t, config.SaveConfig(cfg, path))

	out, err := runCommand(t, "build", "--fixture", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Table built")

	out, err = runCommand(t, "dump", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "14 records")
}
