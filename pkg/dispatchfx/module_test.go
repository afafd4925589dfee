package dispatchfx_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joeydtaylor/steeze-dispatch/pkg/config"
	"github.com/joeydtaylor/steeze-dispatch/pkg/dispatchfx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func testConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.Log.Dir = t.TempDir()
	cfg.Log.Console = false
	return cfg
}

func TestModule_ProvidesWiredRegistry(t *testing.T) {
	promReg := prometheus.NewRegistry()
	var reg *dispatchfx.Registry

	app := fxtest.New(t,
		dispatchfx.Module(
			dispatchfx.WithConfig(testConfig(t)),
			dispatchfx.WithRegisterer(promReg),
		),
		fx.Invoke(func(r *dispatchfx.Registry) error {
			_, err := r.Register("inc", func(p *int) { *p++ })
			return err
		}),
		fx.Populate(&reg),
	)
	app.RequireStart()
	defer app.RequireStop()

	z := 41
	out := reg.Dispatch("inc", &z)
	require.True(t, out.OK(), out.String())
	assert.Equal(t, 42, z)

	n, err := testutil.GatherAndCount(promReg, "dispatch_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestModule_MetricsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Enabled = false
	promReg := prometheus.NewRegistry()
	var reg *dispatchfx.Registry

	app := fxtest.New(t,
		dispatchfx.Module(dispatchfx.WithConfig(cfg), dispatchfx.WithRegisterer(promReg)),
		fx.Populate(&reg),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.False(t, reg.Dispatch("missing").OK())
	mfs, err := promReg.Gather()
	require.NoError(t, err)
	assert.Empty(t, mfs)
}

func TestModule_LoadsConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dispatch.toml")
	body := "service = \"from-file\"\n[log]\nconsole = false\ndir = \"" + filepath.ToSlash(dir) + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("TEST_DISPATCH_CONFIG", path)

	var cfg config.Config
	app := fxtest.New(t,
		dispatchfx.Module(
			dispatchfx.WithConfigEnv("TEST_DISPATCH_CONFIG"),
			dispatchfx.WithRegisterer(prometheus.NewRegistry()),
		),
		fx.Populate(&cfg),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.Equal(t, "from-file", cfg.Service)
}

func TestModule_InvalidConfigFailsStart(t *testing.T) {
	cfg := testConfig(t)
	cfg.Log.Level = "chatty"

	app := fx.New(
		fx.NopLogger,
		dispatchfx.Module(dispatchfx.WithConfig(cfg), dispatchfx.WithRegisterer(prometheus.NewRegistry())),
		fx.Invoke(func(*dispatchfx.Registry) {}),
	)
	assert.Error(t, app.Err())
}
