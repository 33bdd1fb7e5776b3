package reorder

import (
	"time"

	"github.com/thenoetrevino/cadence/internal/events"
	"github.com/thenoetrevino/cadence/internal/metrics"
)

const (
	DefaultPersistTimeout = 10 * time.Second
	DefaultQueueSize      = 64
)

// Option is a functional option for configuring a Coordinator
type Option func(*coordinatorConfig)

type coordinatorConfig struct {
	persistTimeout time.Duration
	queueSize      int
	compensate     bool
	publisher      events.Publisher
	metrics        *metrics.Metrics
	onTransition   func(State)
}

func defaultConfig() coordinatorConfig {
	return coordinatorConfig{
		persistTimeout: DefaultPersistTimeout,
		queueSize:      DefaultQueueSize,
		compensate:     true,
	}
}

// WithPersistTimeout bounds every single remote call. Non-positive values keep the default.
func WithPersistTimeout(d time.Duration) Option {
	return func(cfg *coordinatorConfig) {
		if d > 0 {
			cfg.persistTimeout = d
		}
	}
}

// WithQueueSize sets how many jobs may wait behind the running one before Submit blocks.
func WithQueueSize(n int) Option {
	return func(cfg *coordinatorConfig) {
		if n > 0 {
			cfg.queueSize = n
		}
	}
}

// WithCompensation controls whether rows already written by a failed move are reverted.
func WithCompensation(enabled bool) Option {
	return func(cfg *coordinatorConfig) {
		cfg.compensate = enabled
	}
}

// WithPublisher sets where commit, rollback and refresh events are pushed.
func WithPublisher(p events.Publisher) Option {
	return func(cfg *coordinatorConfig) {
		cfg.publisher = p
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(cfg *coordinatorConfig) {
		cfg.metrics = m
	}
}

// WithStateHook registers fn to be called on every state transition, from the worker goroutine.
func WithStateHook(fn func(State)) Option {
	return func(cfg *coordinatorConfig) {
		cfg.onTransition = fn
	}
}
