package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the filesystem layer.
type Metrics struct {
	// Read metrics
	FilesRead    prometheus.Counter
	BytesRead    prometheus.Counter
	ReadsDenied  *prometheus.CounterVec
	ReadDuration prometheus.Histogram

	// Glob metrics
	GlobResolutions prometheus.Counter
	GlobMatches     prometheus.Counter

	// Permission metrics
	UnsafeVerdicts *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		FilesRead: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "agent_fs_files_read_total",
				Help: "Total number of files read",
			},
		),
		BytesRead: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "agent_fs_bytes_read_total",
				Help: "Total bytes delivered to read sinks",
			},
		),
		ReadsDenied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agent_fs_reads_denied_total",
				Help: "Reads refused by the bounded reader",
			},
			[]string{"reason"},
		),
		ReadDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "agent_fs_read_duration_seconds",
				Help:    "Bounded read duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
		),
		GlobResolutions: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "agent_fs_glob_resolutions_total",
				Help: "Total number of pattern resolutions",
			},
		),
		GlobMatches: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "agent_fs_glob_matches_total",
				Help: "Total paths produced by pattern resolution",
			},
		),
		UnsafeVerdicts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agent_fs_unsafe_verdicts_total",
				Help: "Permission validations that returned unsafe",
			},
			[]string{"rule"},
		),
		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "agent_fs_uptime_seconds",
				Help: "Process uptime in seconds",
			},
		),
	}

	return m
}

// RecordRead records a completed bounded read.
func (m *Metrics) RecordRead(bytes int64, duration time.Duration) {
	if m == nil {
		return
	}
	m.FilesRead.Inc()
	m.BytesRead.Add(float64(bytes))
	m.ReadDuration.Observe(duration.Seconds())
}

// RecordReadDenied records a refused read.
func (m *Metrics) RecordReadDenied(reason string) {
	if m == nil {
		return
	}
	m.ReadsDenied.WithLabelValues(reason).Inc()
}

// RecordResolution records a pattern resolution and its match count.
func (m *Metrics) RecordResolution(matches int) {
	if m == nil {
		return
	}
	m.GlobResolutions.Inc()
	m.GlobMatches.Add(float64(matches))
}

// RecordUnsafeVerdict records a permission validation failure.
func (m *Metrics) RecordUnsafeVerdict(rule string) {
	if m == nil {
		return
	}
	m.UnsafeVerdicts.WithLabelValues(rule).Inc()
}

// UpdateUptime refreshes the uptime gauge.
func (m *Metrics) UpdateUptime() {
	if m == nil {
		return
	}
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}
