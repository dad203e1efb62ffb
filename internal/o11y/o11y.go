// Package o11y instruments the planner and reactive loop: Prometheus
// gauges/histograms with optional Pushgateway delivery, plus an
// InfluxDB line-protocol writer for one point per loop iteration.
package o11y

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics exposes the planner/loop instrumentation for a single
// engine instance. A nil *Metrics is safe to call methods on (they
// become no-ops), so instrumentation can be disabled without branching
// at every call site.
type Metrics struct {
	enabled bool

	pusher       *push.Pusher
	openSetSize  *prometheus.GaugeVec
	planDuration *prometheus.HistogramVec
	obstacleDiff *prometheus.GaugeVec

	influx   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
}

// Config configures the optional Prometheus pushgateway and InfluxDB
// sinks. An empty URL disables the corresponding sink.
type Config struct {
	PushgatewayURL string
	InfluxURL      string
	InfluxToken    string
	InfluxOrg      string
	InfluxBucket   string
}

// New builds a Metrics instance. It creates the gauges/histograms even
// when no pushgateway URL is configured, so in-process readers (tests)
// still see values; they are not registered with any Prometheus
// registry.
func New(cfg Config) *Metrics {
	m := &Metrics{enabled: true}

	m.openSetSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "lpastar_open_set_size", Help: "open set size at ComputeShortestPath entry"},
		[]string{"run_id"},
	)
	m.planDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "lpastar_compute_shortest_path_seconds", Help: "ComputeShortestPath wall-clock duration"},
		[]string{"run_id"},
	)
	m.obstacleDiff = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "lpastar_obstacle_diff_size", Help: "cells added+removed in the last obstacle diff"},
		[]string{"run_id"},
	)

	if cfg.PushgatewayURL != "" {
		m.pusher = push.New(cfg.PushgatewayURL, "lpastar_nav").
			Collector(m.openSetSize).
			Collector(m.planDuration).
			Collector(m.obstacleDiff)
	}

	if cfg.InfluxURL != "" {
		m.influx = influxdb2.NewClient(cfg.InfluxURL, cfg.InfluxToken)
		m.writeAPI = m.influx.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket)
		m.bucket = cfg.InfluxBucket
	}

	return m
}

// ObserveOpenSetSize records the open set's size at the start of a
// ComputeShortestPath call.
func (m *Metrics) ObserveOpenSetSize(runID string, size int) {
	if m == nil || !m.enabled {
		return
	}
	m.openSetSize.WithLabelValues(runID).Set(float64(size))
}

// ObservePlanDuration records how long a ComputeShortestPath call took.
func (m *Metrics) ObservePlanDuration(runID string, d time.Duration) {
	if m == nil || !m.enabled {
		return
	}
	m.planDuration.WithLabelValues(runID).Observe(d.Seconds())
}

// ObserveObstacleDiff records the size of the latest obstacle diff.
func (m *Metrics) ObserveObstacleDiff(runID string, added, removed int) {
	if m == nil || !m.enabled {
		return
	}
	m.obstacleDiff.WithLabelValues(runID).Set(float64(added + removed))
}

// Push sends the current gauge/histogram values to the configured
// pushgateway, if any.
func (m *Metrics) Push() error {
	if m == nil || m.pusher == nil {
		return nil
	}
	return m.pusher.Push()
}

// WriteIteration writes one InfluxDB point for a completed reactive
// loop iteration: the run id, distance-to-goal, g[goal], and iteration
// count. A no-op if InfluxDB is not configured.
func (m *Metrics) WriteIteration(ctx context.Context, runID string, iteration int, gGoal, distanceToGoal float64) error {
	if m == nil || m.writeAPI == nil {
		return nil
	}
	p := influxdb2.NewPoint(
		"lpastar_iteration",
		map[string]string{"run_id": runID},
		map[string]interface{}{
			"iteration":        iteration,
			"g_goal":           gGoal,
			"distance_to_goal": distanceToGoal,
		},
		time.Now(),
	)
	return m.writeAPI.WritePoint(ctx, p)
}

// Close releases the InfluxDB client, if any.
func (m *Metrics) Close() {
	if m == nil || m.influx == nil {
		return
	}
	m.influx.Close()
}

func (m *Metrics) String() string {
	if m == nil {
		return "o11y.Metrics(disabled)"
	}
	return fmt.Sprintf("o11y.Metrics(influx_bucket=%s)", m.bucket)
}
