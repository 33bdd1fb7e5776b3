package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordMove(t *testing.T) {
	m := New("test-record-move")

	m.RecordMove(OutcomeCommitted, time.Millisecond)
	m.RecordMove(OutcomeCommitted, time.Millisecond)
	m.RecordMove(OutcomeRolledBack, time.Millisecond)
	m.RecordMove(OutcomeNoop, 0)

	snap := m.GetSnapshot()
	assert.Equal(t, int64(2), snap.MovesCommitted)
	assert.Equal(t, int64(1), snap.MovesRolledBack)
	assert.Equal(t, int64(1), snap.MovesNoop)
	assert.Equal(t, "test-record-move", snap.Board)

	assert.Equal(t, 2.0, testutil.ToFloat64(moves.WithLabelValues("test-record-move", OutcomeCommitted)))
}

func TestMetrics_RecordPersistCall(t *testing.T) {
	m := New("test-persist")

	m.RecordPersistCall(nil)
	m.RecordPersistCall(errors.New("boom"))

	snap := m.GetSnapshot()
	assert.Equal(t, int64(2), snap.PersistCalls)
	assert.Equal(t, int64(1), snap.PersistFailures)
	assert.Equal(t, 1.0, testutil.ToFloat64(persistCalls.WithLabelValues("test-persist", "false")))
}

func TestMetrics_QueueDepthAndRefreshes(t *testing.T) {
	m := New("test-queue")

	m.SetQueueDepth(3)
	m.IncRefreshes()

	snap := m.GetSnapshot()
	assert.Equal(t, int32(3), snap.QueueDepth)
	assert.Equal(t, int64(1), snap.Refreshes)
	assert.Equal(t, 3.0, testutil.ToFloat64(queueDepth.WithLabelValues("test-queue")))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordMove(OutcomeCommitted, time.Second)
		m.RecordPersistCall(nil)
		m.IncRefreshes()
		m.SetQueueDepth(1)
	})
	assert.Equal(t, Snapshot{}, m.GetSnapshot())
}

func TestRecordHTTPRequest(t *testing.T) {
	RecordHTTPRequest("GET", "/test-path", 200, time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/test-path", "200")))
}
