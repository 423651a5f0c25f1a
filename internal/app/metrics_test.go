package app

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Registered(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveFetch(FetchApplied)
	m.ObserveMerge(7, 2, 3*time.Millisecond)
	m.ObserveWrite("status_write", "ok")

	expected := `
# HELP board_applied_sequence Sequence number of the last applied snapshot.
# TYPE board_applied_sequence gauge
board_applied_sequence 7
# HELP board_preserved_edits Local edits kept over server values by the last merge.
# TYPE board_preserved_edits gauge
board_preserved_edits 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"board_applied_sequence", "board_preserved_edits"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.writes.WithLabelValues("status_write", "ok")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.merge))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveFetch(FetchFailed)
		m.ObserveMerge(1, 0, time.Millisecond)
		m.ObserveWrite("mission_update", "failed")
	})
}
