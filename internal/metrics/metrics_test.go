package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveSearch("solved", 12)
	m.ObserveSearch("solved", 40)
	m.ObserveSearch("unsolvable", 55296)
	m.ObserveGeneration(false, 3*time.Millisecond)
	m.ObserveAttempt("correct")
	m.ObserveRound("started")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Searches.WithLabelValues("solved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Searches.WithLabelValues("unsolvable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Generations.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Attempts.WithLabelValues("correct")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rounds.WithLabelValues("started")))

	n, err := testutil.GatherAndCount(reg, "make24_search_nodes")
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSearch("solved", 1)
		m.ObserveGeneration(true, time.Second)
		m.ObserveAttempt("error")
		m.ObserveRound("lost")
	})
}
