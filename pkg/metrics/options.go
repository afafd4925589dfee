package metrics

import "github.com/prometheus/client_golang/prometheus"

type options struct {
	namespace string
	buckets   []float64
}

type Option func(*options)

func defaultOptions() options {
	return options{namespace: "dispatch", buckets: prometheus.DefBuckets}
}

// WithNamespace prefixes every metric name. Empty keeps the default.
func WithNamespace(ns string) Option {
	return func(o *options) {
		if ns != "" {
			o.namespace = ns
		}
	}
}

// WithBuckets sets the latency histogram buckets (seconds).
func WithBuckets(b []float64) Option {
	return func(o *options) {
		if len(b) > 0 {
			o.buckets = append([]float64(nil), b...)
		}
	}
}
