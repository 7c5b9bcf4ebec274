package observ

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every clens metric. It is private to the process so the
// CLI can dump it without the Go runtime collectors.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// Metrics definitions
var (
	StageDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "clens_stage_seconds",
		Help:    "Time spent in one analysis stage.",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	}, []string{"stage"})

	AnalysesTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "clens_analyses_total",
		Help: "Total number of analyze calls by outcome.",
	}, []string{"outcome"})

	DiagnosticsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "clens_diagnostics_total",
		Help: "Total number of diagnostics produced, by code.",
	}, []string{"code"})

	TokensTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "clens_tokens_total",
		Help: "Total number of tokens produced, by kind.",
	}, []string{"kind"})

	NestingDepth = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "clens_loop_nesting_depth",
		Help:    "Maximum loop nesting depth per analysis.",
		Buckets: []float64{0, 1, 2, 3, 4, 6, 8},
	})

	WatcherEventsTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "clens_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)

const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// WriteMetrics dumps the registry in the text exposition format to path.
func WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
