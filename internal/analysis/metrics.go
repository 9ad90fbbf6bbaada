package analysis

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysesTotal        *prometheus.CounterVec
	fetchBytesTotal      *prometheus.CounterVec
	stageDurationSeconds *prometheus.HistogramVec

	metricsOnce sync.Once
)

// InitMetrics registers the Prometheus collectors for the analysis
// service. It is safe to call multiple times; recording functions are
// no-ops until it has been called.
func InitMetrics() {
	metricsOnce.Do(func() {
		analysesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analyzer_analyses_total",
				Help: "Total number of analysis runs, labeled by action and outcome.",
			},
			[]string{"action", "outcome"},
		)

		fetchBytesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analyzer_fetch_bytes_total",
				Help: "Total number of document bytes fetched, labeled by host.",
			},
			[]string{"host"},
		)

		stageDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analyzer_stage_duration_seconds",
				Help:    "Histogram of pipeline stage latencies.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"stage"},
		)
	})
}

func countAnalysis(action Action, outcome string) {
	if analysesTotal == nil {
		return
	}
	// An unparsed action arrives as the zero value; keep the label set
	// bounded instead of emitting an empty label.
	label := string(action)
	if label == "" {
		label = "unknown"
	}
	analysesTotal.WithLabelValues(label, outcome).Inc()
}

func countFetchBytes(host string, n int) {
	if fetchBytesTotal == nil || n <= 0 {
		return
	}
	fetchBytesTotal.WithLabelValues(host).Add(float64(n))
}

func observeStage(stage string, d time.Duration) {
	if stageDurationSeconds == nil {
		return
	}
	stageDurationSeconds.WithLabelValues(stage).Observe(d.Seconds())
}
