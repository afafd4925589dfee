package metrics

import (
	"github.com/joeydtaylor/steeze-dispatch/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// ProvideCollectors is the Fx provider. It returns nil when metrics are
// disabled in cfg.
func ProvideCollectors(cfg config.Config, reg prometheus.Registerer) (*Collectors, error) {
	if !cfg.Metrics.Enabled {
		return nil, nil
	}
	return New(reg, WithNamespace(cfg.Metrics.Namespace), WithBuckets(cfg.Metrics.Buckets))
}

var Module = fx.Options(
	fx.Provide(ProvideCollectors),
)
