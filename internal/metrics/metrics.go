// Package metrics collects per-run pipeline metrics on an isolated
// Prometheus registry and writes them in the node_exporter textfile format.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the collectors of one run. A nil *Recorder discards every
// observation.
type Recorder struct {
	registry *prometheus.Registry

	reads       prometheus.Gauge
	uniqueReads prometheus.Gauge
	graphNodes  *prometheus.GaugeVec
	graphEdges  *prometheus.GaugeVec
	samples     *prometheus.CounterVec
	corrections *prometheus.CounterVec
	stages      *prometheus.HistogramVec
}

// New creates a recorder with its own registry. runID and mode are attached
// to every series as constant labels.
func New(runID, mode string) *Recorder {
	reg := prometheus.NewRegistry()
	labels := prometheus.Labels{"run_id": runID, "mode": mode}
	f := promauto.With(reg)

	return &Recorder{
		registry: reg,
		reads: f.NewGauge(prometheus.GaugeOpts{
			Name:        "noise2read_reads",
			Help:        "Number of reads in the input dataset",
			ConstLabels: labels,
		}),
		uniqueReads: f.NewGauge(prometheus.GaugeOpts{
			Name:        "noise2read_unique_reads",
			Help:        "Number of unique reads in the input dataset",
			ConstLabels: labels,
		}),
		graphNodes: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "noise2read_graph_nodes",
			Help:        "Nodes of the read graph by edit distance",
			ConstLabels: labels,
		}, []string{"edit_distance"}),
		graphEdges: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "noise2read_graph_edges",
			Help:        "Edges of the read graph by edit distance",
			ConstLabels: labels,
		}, []string{"edit_distance"}),
		samples: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "noise2read_samples_total",
			Help:        "Extracted samples by kind",
			ConstLabels: labels,
		}, []string{"kind"}),
		corrections: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "noise2read_corrections_total",
			Help:        "Corrected reads by kind",
			ConstLabels: labels,
		}, []string{"kind"}),
		stages: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "noise2read_stage_duration_seconds",
			Help:        "Duration of pipeline stages",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.01, 4, 10),
		}, []string{"stage"}),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Dataset records the input size.
func (r *Recorder) Dataset(reads, unique int) {
	if r == nil {
		return
	}
	r.reads.Set(float64(reads))
	r.uniqueReads.Set(float64(unique))
}

// Graph records the size of a read graph.
func (r *Recorder) Graph(ed, nodes, edges int) {
	if r == nil {
		return
	}
	label := strconv.Itoa(ed)
	r.graphNodes.WithLabelValues(label).Set(float64(nodes))
	r.graphEdges.WithLabelValues(label).Set(float64(edges))
}

// Samples adds n extracted samples of a kind.
func (r *Recorder) Samples(kind string, n int) {
	if r == nil {
		return
	}
	r.samples.WithLabelValues(kind).Add(float64(n))
}

// Corrections adds n corrections of a kind.
func (r *Recorder) Corrections(kind string, n int) {
	if r == nil {
		return
	}
	r.corrections.WithLabelValues(kind).Add(float64(n))
}

// Stage starts timing a stage; call the returned function when it ends.
func (r *Recorder) Stage(name string) func() {
	if r == nil {
		return func() {}
	}
	timer := prometheus.NewTimer(r.stages.WithLabelValues(name))
	return func() { timer.ObserveDuration() }
}

// ObserveStage records a finished stage of the given duration.
func (r *Recorder) ObserveStage(name string, d time.Duration) {
	if r == nil {
		return
	}
	r.stages.WithLabelValues(name).Observe(d.Seconds())
}

// WriteTextfile writes every collected series to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
