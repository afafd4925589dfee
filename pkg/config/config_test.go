package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joeydtaylor/steeze-dispatch/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
}

func TestParse_OverlaysDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`
service = "orders"

[log]
level = "debug"
console = false

[metrics]
namespace = "orders"
`))
	require.NoError(t, err)
	assert.Equal(t, "orders", cfg.Service)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.Console)
	assert.Equal(t, "dispatch.log", cfg.Log.File, "unset keys keep defaults")
	assert.Equal(t, "orders", cfg.Metrics.Namespace)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestParse_CollectsAllErrors(t *testing.T) {
	_, err := config.Parse([]byte(`
service = ""

[log]
level = "loud"
file = ""
max_backups = -1

[metrics]
buckets = [1.0, 0.5]
`))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 5)
}

func TestParse_BadTOML(t *testing.T) {
	_, err := config.Parse([]byte(`service = `))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dispatch.toml")
	require.NoError(t, os.WriteFile(path, []byte(`service = "demo"`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Service)

	_, err = config.Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	cfg, err = config.LoadOrDefault(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
