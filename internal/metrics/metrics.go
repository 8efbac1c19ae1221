// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics records per-stage pipeline counters and writes them in the
// Prometheus textfile format for a node exporter collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdiddy/proceedings-engine/pkg/types"
)

const namespace = "proceedings"

// Recorder holds the metrics of one pipeline run on a private registry.
type Recorder struct {
	reg      *prometheus.Registry
	items    *prometheus.CounterVec
	duration *prometheus.GaugeVec
	errors   *prometheus.CounterVec
	lastRun  prometheus.Gauge
}

// New returns a Recorder with its metrics registered.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_items_total",
			Help:      "Items processed by a pipeline stage, by outcome.",
		}, []string{"stage", "status"}),
		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time of the last run of a pipeline stage.",
		}, []string{"stage"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_errors_total",
			Help:      "Pipeline stages that aborted with an error.",
		}, []string{"stage"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last pipeline run finished.",
		}),
	}
	r.reg.MustRegister(r.items, r.duration, r.errors, r.lastRun)
	return r
}

// ObserveStage records the outcome counts and wall time of a stage. err
// marks a stage that aborted.
func (r *Recorder) ObserveStage(stage string, res types.BatchResult, d time.Duration, err error) {
	r.items.WithLabelValues(stage, "done").Add(float64(res.Done))
	r.items.WithLabelValues(stage, "skipped").Add(float64(res.Skipped))
	r.items.WithLabelValues(stage, "failed").Add(float64(res.Failed))
	r.duration.WithLabelValues(stage).Set(d.Seconds())
	if err != nil {
		r.errors.WithLabelValues(stage).Inc()
	}
}

// Finish stamps the run completion time.
func (r *Recorder) Finish(at time.Time) {
	r.lastRun.Set(float64(at.Unix()))
}

// WriteTextfile writes the registry to path atomically. An empty path is a
// no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
