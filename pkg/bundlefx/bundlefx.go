// bundlefx/bundlefx.go
package bundlefx

import (
	"github.com/joeydtaylor/steeze-dispatch/pkg/logger"
	"github.com/joeydtaylor/steeze-dispatch/pkg/metrics"
	"go.uber.org/fx"
)

// Module provides *zap.Logger and *metrics.Collectors. It needs config.Config
// and prometheus.Registerer in the graph.
var Module = fx.Options(
	logger.Module,
	metrics.Module,
)
