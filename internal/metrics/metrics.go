// Package metrics holds the Prometheus collectors for the game service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Searches    *prometheus.CounterVec
	SearchNodes prometheus.Histogram
	Generations *prometheus.CounterVec
	GenDuration prometheus.Histogram
	Attempts    *prometheus.CounterVec
	Rounds      *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "make24_searches_total",
				Help: "Solver searches by outcome",
			},
			[]string{"outcome"},
		),
		SearchNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "make24_search_nodes",
			Help:    "Expressions evaluated per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		Generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "make24_generations_total",
				Help: "Generated digit sets, labelled by whether the fallback set was used",
			},
			[]string{"fallback"},
		),
		GenDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "make24_generation_duration_seconds",
			Help:    "Time spent generating a solvable digit set",
			Buckets: prometheus.DefBuckets,
		}),
		Attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "make24_attempts_total",
				Help: "Submitted expressions by status",
			},
			[]string{"status"},
		),
		Rounds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "make24_rounds_total",
				Help: "Rounds by lifecycle event",
			},
			[]string{"event"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Searches, m.SearchNodes, m.Generations, m.GenDuration, m.Attempts, m.Rounds)
	}
	return m
}

// ObserveSearch records one solver run. outcome is "solved", "unsolvable" or "error".
func (m *Metrics) ObserveSearch(outcome string, nodes int) {
	if m == nil {
		return
	}
	m.Searches.WithLabelValues(outcome).Inc()
	m.SearchNodes.Observe(float64(nodes))
}

// ObserveGeneration records one generated puzzle.
func (m *Metrics) ObserveGeneration(fallback bool, d time.Duration) {
	if m == nil {
		return
	}
	label := "false"
	if fallback {
		label = "true"
	}
	m.Generations.WithLabelValues(label).Inc()
	m.GenDuration.Observe(d.Seconds())
}

// ObserveAttempt records one submitted expression.
func (m *Metrics) ObserveAttempt(status string) {
	if m == nil {
		return
	}
	m.Attempts.WithLabelValues(status).Inc()
}

// ObserveRound records a round event: "started", "won", "lost" or "revealed".
func (m *Metrics) ObserveRound(event string) {
	if m == nil {
		return
	}
	m.Rounds.WithLabelValues(event).Inc()
}
