package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AppMetrics holds the instruments for the interaction and refresh
// pipelines. A nil *AppMetrics is a valid no-op recorder, so the CLI mode
// can run without a registry.
type AppMetrics struct {
	InteractionsProcessed *prometheus.CounterVec
	MoodScore             prometheus.Gauge
	RefreshDuration       prometheus.Histogram
}

// NewAppMetrics creates and registers the application metrics.
func NewAppMetrics(reg prometheus.Registerer) *AppMetrics {
	m := &AppMetrics{
		InteractionsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interactions_processed_total",
			Help:      "Total number of interactions processed, by outcome and kind.",
		}, []string{"outcome", "kind"}),
		MoodScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mood_score",
			Help:      "Current committed mood score.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Duration of scheduled mood refreshes in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}),
	}

	reg.MustRegister(m.InteractionsProcessed, m.MoodScore, m.RefreshDuration)
	return m
}

// RecordInteraction counts one processed interaction.
func (m *AppMetrics) RecordInteraction(outcome, kind string) {
	if m == nil {
		return
	}
	m.InteractionsProcessed.WithLabelValues(outcome, kind).Inc()
}

// SetMoodScore publishes the committed score.
func (m *AppMetrics) SetMoodScore(score int) {
	if m == nil {
		return
	}
	m.MoodScore.Set(float64(score))
}

// ObserveRefresh records one refresh cycle's duration.
func (m *AppMetrics) ObserveRefresh(d time.Duration) {
	if m == nil {
		return
	}
	m.RefreshDuration.Observe(d.Seconds())
}
