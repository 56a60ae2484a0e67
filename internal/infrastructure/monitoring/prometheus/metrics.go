// Package prometheus exposes the service metrics: analysis outcomes, parser
// leniency counters, and processing latency.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Analysis outcome label values.
const (
	OutcomeOK           = "ok"
	OutcomeEmptyDataset = "empty_dataset"
	OutcomeParseError   = "parse_error"
	OutcomeStorageError = "storage_error"
)

// Metrics holds every collector the service registers.
type Metrics struct {
	registry *prometheus.Registry

	AnalysesTotal  *prometheus.CounterVec
	ModelsParsed   prometheus.Counter
	UnscoredModels prometheus.Counter
	ParseDuration  prometheus.Histogram
	CacheHits      *prometheus.CounterVec
}

// NewMetrics constructs and registers all collectors on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dockai",
			Name:      "analyses_total",
			Help:      "Processed analysis uploads by outcome.",
		}, []string{"outcome"}),
		ModelsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dockai",
			Name:      "models_parsed_total",
			Help:      "Docking poses kept across all processed uploads.",
		}),
		UnscoredModels: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dockai",
			Name:      "unscored_models_total",
			Help:      "Poses kept without a score-report entry.",
		}),
		ParseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dockai",
			Name:      "parse_duration_seconds",
			Help:      "Wall time spent parsing and merging one upload pair.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dockai",
			Name:      "modeldata_cache_requests_total",
			Help:      "Model-data cache lookups by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.AnalysesTotal, m.ModelsParsed, m.UnscoredModels, m.ParseDuration, m.CacheHits)
	return m
}

// ObserveParse records one parse duration.
func (m *Metrics) ObserveParse(d time.Duration) {
	m.ParseDuration.Observe(d.Seconds())
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
