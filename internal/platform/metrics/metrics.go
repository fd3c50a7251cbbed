// Package metrics exposes record store instrumentation through Prometheus.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

func NewRecorder(namespace string) *Recorder {
	registry := prometheus.NewRegistry()
	r := &Recorder{
		registry: registry,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "record_store",
			Name:      "operations_total",
			Help:      "Record store operations by entity kind, operation and result.",
		}, []string{"kind", "operation", "result"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "record_store",
			Name:      "operation_duration_seconds",
			Help:      "Record store round-trip latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind", "operation"}),
	}
	registry.MustRegister(
		r.operations,
		r.latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) Observe(_ context.Context, kind, operation string, err error, duration time.Duration) {
	result := "success"
	if err != nil {
		result = "error"
	}
	r.operations.WithLabelValues(kind, operation, result).Inc()
	r.latency.WithLabelValues(kind, operation).Observe(duration.Seconds())
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
