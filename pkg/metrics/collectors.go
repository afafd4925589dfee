// pkg/metrics/collectors.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors records dispatch telemetry. It satisfies core.Observer.
type Collectors struct {
	dispatches *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	registered prometheus.Gauge
}

// New builds the collectors and registers them with reg.
func New(reg prometheus.Registerer, opts ...Option) (*Collectors, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Collectors{
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.namespace,
				Name:      "calls_total",
				Help:      "dispatches by key and outcome",
			},
			[]string{"key", "outcome"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: o.namespace,
				Name:      "call_duration_seconds",
				Help:      "dispatch latency, handler included",
				Buckets:   o.buckets,
			},
			[]string{"outcome"},
		),
		registered: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: o.namespace,
				Name:      "registered_handlers",
				Help:      "handlers currently registered",
			},
		),
	}

	for _, col := range []prometheus.Collector{c.dispatches, c.latency, c.registered} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collectors) ObserveDispatch(key, outcome string, d time.Duration) {
	c.dispatches.WithLabelValues(key, outcome).Inc()
	c.latency.WithLabelValues(outcome).Observe(d.Seconds())
}

func (c *Collectors) SetRegistered(n int) { c.registered.Set(float64(n)) }
