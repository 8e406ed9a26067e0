// Package metrics counts merge jobs on a private Prometheus registry. A CLI
// process has no scrape endpoint, so the registry is exported as a node
// exporter textfile on exit.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lepinkainen/audiomerge/audio"
)

// Collector implements audio.Recorder
type Collector struct {
	registry *prometheus.Registry

	jobsTotal       *prometheus.CounterVec
	bytesWritten    prometheus.Counter
	inputFiles      prometheus.Histogram
	jobDuration     *prometheus.HistogramVec
	duplicateGroups prometheus.Counter
}

// NewCollector registers the merge metrics on a fresh registry
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		// Labels: status (succeeded/failed/cancelled)
		jobsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "audiomerge_jobs_total",
				Help: "Total number of merge jobs by final status",
			},
			[]string{"status"},
		),
		bytesWritten: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "audiomerge_bytes_written_total",
				Help: "Bytes written to merged output files, including partial output",
			},
		),
		inputFiles: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "audiomerge_input_files",
				Help:    "Number of input files per merge job",
				Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
			},
		),
		// Buckets: 0.1s, 0.5s, 1s, 2s, 5s, 10s, 30s, 60s, 120s, 300s
		jobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "audiomerge_job_duration_seconds",
				Help:    "Wall time of merge jobs by final status",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
			},
			[]string{"status"},
		),
		duplicateGroups: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "audiomerge_duplicate_groups_total",
				Help: "Duplicate groups found by pre-merge checks",
			},
		),
	}
}

// JobFinished records the outcome of one merge run
func (c *Collector) JobFinished(status audio.Status, inputs int, bytes int64, elapsed time.Duration) {
	label := status.String()
	c.jobsTotal.WithLabelValues(label).Inc()
	c.jobDuration.WithLabelValues(label).Observe(elapsed.Seconds())
	c.inputFiles.Observe(float64(inputs))
	if bytes > 0 {
		c.bytesWritten.Add(float64(bytes))
	}
}

// DuplicatesFound records the result of a duplicate check
func (c *Collector) DuplicatesFound(groups int) {
	if groups > 0 {
		c.duplicateGroups.Add(float64(groups))
	}
}

// Registry exposes the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes all metrics in the text exposition format. The file is
// replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
