// Package metrics exposes Prometheus metrics for settings loads and HTTP traffic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_settings_loads_total",
		Help: "Settings loads by trigger and outcome",
	}, []string{"trigger", "outcome"}) // outcome=completed|fallback

	rowsSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_settings_rows_skipped_total",
		Help: "Settings rows dropped during parsing",
	})

	sectionsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_sections",
		Help: "Number of sections in the current snapshot",
	})

	resourcesLoaded = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dashboard_resources",
		Help: "Resources in the current snapshot by section and status class",
	}, []string{"section", "status_class"})

	fallbackActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_fallback_active",
		Help: "Whether the current snapshot is the default fallback (1) or parsed (0)",
	})

	loadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_settings_load_duration_seconds",
		Help:    "Time spent fetching and parsing settings",
		Buckets: prometheus.DefBuckets,
	})
)

// RecordLoad counts one finished load.
func RecordLoad(trigger, outcome string, seconds float64) {
	loadsTotal.WithLabelValues(trigger, outcome).Inc()
	loadDuration.Observe(seconds)
}

// AddRowsSkipped counts rows dropped by the parser.
func AddRowsSkipped(n int) {
	if n > 0 {
		rowsSkippedTotal.Add(float64(n))
	}
}

// SectionCounts is the per-section tally published after a load.
type SectionCounts struct {
	Section string
	Running int
	Stopped int
}

// SetSnapshot publishes gauges for the snapshot now being served.
func SetSnapshot(sections []SectionCounts, fallback bool) {
	sectionsLoaded.Set(float64(len(sections)))
	resourcesLoaded.Reset()
	for _, s := range sections {
		resourcesLoaded.WithLabelValues(s.Section, "running").Set(float64(s.Running))
		resourcesLoaded.WithLabelValues(s.Section, "stopped").Set(float64(s.Stopped))
	}
	if fallback {
		fallbackActive.Set(1)
	} else {
		fallbackActive.Set(0)
	}
}
