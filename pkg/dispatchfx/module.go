// pkg/dispatchfx/module.go
package dispatchfx

import (
	"context"
	"os"

	"github.com/joeydtaylor/steeze-dispatch/pkg/bundlefx"
	"github.com/joeydtaylor/steeze-dispatch/pkg/config"
	"github.com/joeydtaylor/steeze-dispatch/pkg/core"
	"github.com/joeydtaylor/steeze-dispatch/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Registry is the string-keyed registry this module provides.
type Registry = core.Registry[string]

// ---------- Options ----------

type Settings struct {
	ConfigEnv     string // e.g. DISPATCH_CONFIG
	DefaultConfig string // e.g. "dispatch.toml"
	Service       string // overrides config service when set
	Registerer    prometheus.Registerer

	config *config.Config
}

type Option func(*Settings)

func WithConfigEnv(k string) Option        { return func(s *Settings) { s.ConfigEnv = k } }
func WithDefaultConfig(path string) Option { return func(s *Settings) { s.DefaultConfig = path } }
func WithService(name string) Option       { return func(s *Settings) { s.Service = name } }
func WithRegisterer(r prometheus.Registerer) Option {
	return func(s *Settings) { s.Registerer = r }
}

// WithConfig skips file loading and uses cfg as is (after validation).
func WithConfig(cfg config.Config) Option { return func(s *Settings) { s.config = &cfg } }

func defaultSettings() Settings {
	return Settings{
		ConfigEnv:     "DISPATCH_CONFIG",
		DefaultConfig: "dispatch.toml",
		Registerer:    prometheus.DefaultRegisterer,
	}
}

// Module returns a complete Fx option set providing *Registry; add app-specific
// fx.Invoke(...) alongside to register handlers.
func Module(opts ...Option) fx.Option {
	s := defaultSettings()
	for _, o := range opts {
		o(&s)
	}
	return fx.Options(
		fx.Supply(s),
		fx.Provide(provideConfig),
		fx.Provide(func(s Settings) prometheus.Registerer { return s.Registerer }),
		bundlefx.Module,
		fx.Provide(provideRegistry),
		fx.Invoke(registerHooks),
	)
}

func provideConfig(s Settings) (config.Config, error) {
	var cfg config.Config
	if s.config != nil {
		cfg = *s.config
	} else {
		var err error
		cfg, err = config.LoadOrDefault(envOr(s.ConfigEnv, s.DefaultConfig))
		if err != nil {
			return config.Config{}, err
		}
	}
	if s.Service != "" {
		cfg.Service = s.Service
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// ---------- Registry ----------

type registryDeps struct {
	fx.In
	Logger  *zap.Logger
	Metrics *metrics.Collectors `optional:"true"`
}

func provideRegistry(d registryDeps) *Registry {
	opts := []core.Option{core.WithLogger(d.Logger.Named("registry"))}
	if d.Metrics != nil {
		opts = append(opts, core.WithObserver(d.Metrics))
	}
	return core.NewRegistry[string](opts...)
}

// ---------- Lifecycle ----------

func registerHooks(lc fx.Lifecycle, cfg config.Config, reg *Registry, zl *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			zl.Info("dispatch registry ready",
				zap.Int("handlers", reg.Len()),
				zap.Strings("keys", reg.Keys()),
				zap.Bool("metrics", cfg.Metrics.Enabled),
			)
			return nil
		},
		OnStop: func(context.Context) error {
			zl.Info("dispatch registry stopping", zap.Int("handlers", reg.Len()))
			_ = zl.Sync()
			return nil
		},
	})
}

// ---------- tiny helpers ----------

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
