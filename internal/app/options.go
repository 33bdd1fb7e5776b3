package app

import (
	"io"
	"log/slog"

	"github.com/thenoetrevino/cadence/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	bus     *events.Bus
	logger  *slog.Logger
	closers []io.Closer
}

// WithBus sets the event bus shared by every board
func WithBus(bus *events.Bus) Option {
	return func(cfg *appConfig) {
		cfg.bus = bus
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithCloser registers a resource released by App.Close, such as the database handle
func WithCloser(c io.Closer) Option {
	return func(cfg *appConfig) {
		cfg.closers = append(cfg.closers, c)
	}
}
