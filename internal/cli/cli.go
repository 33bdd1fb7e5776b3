package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/cadence/internal/app"
	"github.com/thenoetrevino/cadence/internal/config"
	"github.com/thenoetrevino/cadence/internal/logging"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services and open boards
	Config *config.Config

	// owned is false when the App was injected through the context and is
	// closed by whoever created it.
	owned bool
}

// NewCLI loads configuration, initializes logging and opens the item store:
// the remote API when `remote.url` is set, the local database otherwise.
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logCloser, err := logging.Init(logging.Options{Level: cfg.Log.Level, Path: cfg.Log.Path})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	application, err := app.Open(ctx, cfg, app.WithCloser(logCloser), app.WithLogger(logging.Logger))
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}

	return &CLI{
		App:    application,
		Config: cfg,
		owned:  true,
	}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
