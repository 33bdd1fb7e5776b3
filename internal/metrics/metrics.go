// Package metrics tracks coordinator and HTTP statistics. Counters are kept both
// as local atomics (for status output) and as Prometheus collectors (for /metrics).
package metrics

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Move outcomes used as the "outcome" label.
const (
	OutcomeCommitted  = "committed"
	OutcomeRolledBack = "rolled_back"
	OutcomeNoop       = "noop"
	OutcomeRejected   = "rejected"
)

var (
	registerOnce sync.Once

	moves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cadence",
			Subsystem: "sync",
			Name:      "moves_total",
			Help:      "Move requests by outcome.",
		},
		[]string{"board", "outcome"},
	)
	moveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cadence",
			Subsystem: "sync",
			Name:      "move_duration_seconds",
			Help:      "Time from planning to commit or rollback.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"board", "outcome"},
	)
	persistCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cadence",
			Subsystem: "sync",
			Name:      "persist_calls_total",
			Help:      "UpdatePosition calls issued to the item store.",
		},
		[]string{"board", "success"},
	)
	refreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cadence",
			Subsystem: "sync",
			Name:      "refreshes_total",
			Help:      "Full refreshes from the item store.",
		},
		[]string{"board"},
	)
	queueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "cadence",
			Subsystem: "sync",
			Name:      "queue_depth",
			Help:      "Jobs waiting behind the in-flight move.",
		},
		[]string{"board"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cadence",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cadence",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Register adds the collectors to the default Prometheus registry. Safe to call repeatedly.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(moves, moveDuration, persistCalls, refreshes, queueDepth, httpRequests, httpDuration)
	})
}

// RecordHTTPRequest observes one served request.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	Register()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

// Metrics tracks one coordinator's statistics using atomic operations for thread-safety.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	board string

	MovesCommitted  atomic.Int64
	MovesRolledBack atomic.Int64
	MovesNoop       atomic.Int64
	MovesRejected   atomic.Int64
	PersistCalls    atomic.Int64
	PersistFailures atomic.Int64
	Refreshes       atomic.Int64
	QueueDepth      atomic.Int32
	StartTime       time.Time
}

// New creates a Metrics instance labelled with the board name.
func New(board string) *Metrics {
	Register()
	return &Metrics{board: board, StartTime: time.Now()}
}

// RecordMove counts a resolved move and its duration.
func (m *Metrics) RecordMove(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	switch outcome {
	case OutcomeCommitted:
		m.MovesCommitted.Add(1)
	case OutcomeRolledBack:
		m.MovesRolledBack.Add(1)
	case OutcomeNoop:
		m.MovesNoop.Add(1)
	case OutcomeRejected:
		m.MovesRejected.Add(1)
	}
	moves.WithLabelValues(m.board, outcome).Inc()
	moveDuration.WithLabelValues(m.board, outcome).Observe(duration.Seconds())
}

// RecordPersistCall counts one UpdatePosition call.
func (m *Metrics) RecordPersistCall(err error) {
	if m == nil {
		return
	}
	m.PersistCalls.Add(1)
	if err != nil {
		m.PersistFailures.Add(1)
	}
	persistCalls.WithLabelValues(m.board, strconv.FormatBool(err == nil)).Inc()
}

// IncRefreshes counts a completed refresh.
func (m *Metrics) IncRefreshes() {
	if m == nil {
		return
	}
	m.Refreshes.Add(1)
	refreshes.WithLabelValues(m.board).Inc()
}

// SetQueueDepth records how many jobs are waiting.
func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.QueueDepth.Store(int32(n))
	queueDepth.WithLabelValues(m.board).Set(float64(n))
}

// Snapshot represents a point-in-time snapshot of metrics
type Snapshot struct {
	Board           string    `json:"board"`
	MovesCommitted  int64     `json:"moves_committed"`
	MovesRolledBack int64     `json:"moves_rolled_back"`
	MovesNoop       int64     `json:"moves_noop"`
	MovesRejected   int64     `json:"moves_rejected"`
	PersistCalls    int64     `json:"persist_calls"`
	PersistFailures int64     `json:"persist_failures"`
	Refreshes       int64     `json:"refreshes"`
	QueueDepth      int32     `json:"queue_depth"`
	StartTime       time.Time `json:"start_time"`
	Uptime          string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	return Snapshot{
		Board:           m.board,
		MovesCommitted:  m.MovesCommitted.Load(),
		MovesRolledBack: m.MovesRolledBack.Load(),
		MovesNoop:       m.MovesNoop.Load(),
		MovesRejected:   m.MovesRejected.Load(),
		PersistCalls:    m.PersistCalls.Load(),
		PersistFailures: m.PersistFailures.Load(),
		Refreshes:       m.Refreshes.Load(),
		QueueDepth:      m.QueueDepth.Load(),
		StartTime:       m.StartTime,
		Uptime:          time.Since(m.StartTime).String(),
	}
}
