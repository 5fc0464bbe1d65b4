package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/batchsplit/internal/config"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, "batchsplit")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0o644))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Nil(t, cfg.Defaults.Quiet)
	assert.Nil(t, cfg.Defaults.Lock)
	assert.Nil(t, cfg.Theme.Green)
}

func TestLoad_FullConfig(t *testing.T) {
	writeConfig(t, `
[defaults]
quiet = true
verbose = false
lock = false
journal = "/var/lib/batchsplit/journal.db"
log = "/tmp/batchsplit.log"

[theme]
green = "#00ff00"
red = "#ff0000"
`)

	cfg, err := config.Load()
	require.NoError(t, err)

	require.NotNil(t, cfg.Defaults.Quiet)
	assert.True(t, *cfg.Defaults.Quiet)

	require.NotNil(t, cfg.Defaults.Verbose)
	assert.False(t, *cfg.Defaults.Verbose)

	require.NotNil(t, cfg.Defaults.Lock)
	assert.False(t, *cfg.Defaults.Lock)

	require.NotNil(t, cfg.Defaults.Journal)
	assert.Equal(t, "/var/lib/batchsplit/journal.db", *cfg.Defaults.Journal)

	require.NotNil(t, cfg.Defaults.Log)
	assert.Equal(t, "/tmp/batchsplit.log", *cfg.Defaults.Log)

	require.NotNil(t, cfg.Theme.Green)
	assert.Equal(t, "#00ff00", *cfg.Theme.Green)
	require.NotNil(t, cfg.Theme.Red)
	assert.Equal(t, "#ff0000", *cfg.Theme.Red)

	// Unset fields should remain nil.
	assert.Nil(t, cfg.Theme.Yellow)
	assert.Nil(t, cfg.Theme.Muted)
}

func TestLoad_PartialConfig(t *testing.T) {
	writeConfig(t, `
[theme]
muted = "#888888"
`)

	cfg, err := config.Load()
	require.NoError(t, err)

	// Defaults section entirely absent.
	assert.Nil(t, cfg.Defaults.Quiet)
	assert.Nil(t, cfg.Defaults.Journal)

	require.NotNil(t, cfg.Theme.Muted)
	assert.Equal(t, "#888888", *cfg.Theme.Muted)
}

func TestLoad_InvalidTOML(t *testing.T) {
	writeConfig(t, "invalid [[[")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Config{}, cfg)
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/batchsplit/config.toml", config.Path())
}

func TestPath_HomeFallback(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/someone")
	assert.Equal(t, "/home/someone/.config/batchsplit/config.toml", config.Path())
}
