package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/thenoetrevino/cadence/internal/config"
	"github.com/thenoetrevino/cadence/internal/database"
	"github.com/thenoetrevino/cadence/internal/events"
	"github.com/thenoetrevino/cadence/internal/metrics"
	"github.com/thenoetrevino/cadence/internal/ordering"
	"github.com/thenoetrevino/cadence/internal/remote"
	itemservice "github.com/thenoetrevino/cadence/internal/services/item"
	"github.com/thenoetrevino/cadence/internal/services/reorder"
	"github.com/thenoetrevino/cadence/internal/types"
)

// App holds all application services and provides dependency injection.
// Boards are opened lazily, one coordinator per scope.
type App struct {
	cfg     *config.Config
	repo    database.ItemRepository
	bus     *events.Bus
	logger  *slog.Logger
	closers []io.Closer

	// Service layer (business logic)
	ItemService itemservice.Service

	mu     sync.Mutex
	boards map[types.Scope]*board
}

// board is a coordinator slot. ready is closed once the initial refresh has
// finished; c is set only when it succeeded.
type board struct {
	ready chan struct{}
	c     *reorder.Coordinator
	err   error
}

func (b *board) wait(ctx context.Context) (*reorder.Coordinator, error) {
	select {
	case <-b.ready:
		return b.c, b.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// New creates a new App with all services initialized.
func New(cfg *config.Config, repo database.ItemRepository, opts ...Option) *App {
	ac := &appConfig{}
	for _, opt := range opts {
		opt(ac)
	}
	if ac.bus == nil {
		ac.bus = events.NewBus()
	}
	if ac.logger == nil {
		ac.logger = slog.Default()
	}

	a := &App{
		cfg:     cfg,
		repo:    repo,
		bus:     ac.bus,
		logger:  ac.logger,
		closers: ac.closers,
		boards:  make(map[types.Scope]*board),
	}
	a.ItemService = itemservice.NewService(repo, cfg, a)
	return a
}

// Open builds an App from configuration: against `remote.url` when set,
// otherwise against the local SQLite database.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg.Remote.URL != "" {
		client := remote.NewClient(cfg.Remote.URL, cfg.Remote.Timeout)
		return New(cfg, client, opts...), nil
	}

	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	opts = append(opts, WithCloser(db))
	return New(cfg, database.NewItemRepo(db), opts...), nil
}

// Config returns the loaded configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Repo returns the underlying item store.
func (a *App) Repo() database.ItemRepository { return a.repo }

// Bus returns the event bus every board publishes to.
func (a *App) Bus() *events.Bus { return a.bus }

// Board returns the coordinator for scope, creating and hydrating it on first use.
// Concurrent callers for a scope that is still hydrating wait for that first
// refresh and share its outcome.
func (a *App) Board(ctx context.Context, scope types.Scope) (*reorder.Coordinator, error) {
	a.mu.Lock()
	if b, ok := a.boards[scope]; ok {
		a.mu.Unlock()
		return b.wait(ctx)
	}

	buckets, err := a.cfg.BucketSetForScope(scope)
	if err != nil {
		a.mu.Unlock()
		return nil, err
	}

	b := &board{ready: make(chan struct{})}
	a.boards[scope] = b
	a.mu.Unlock()
	defer close(b.ready)

	c := reorder.NewCoordinator(ordering.NewStore(buckets), a.repo, scope,
		reorder.WithPersistTimeout(a.cfg.Sync.PersistTimeout),
		reorder.WithQueueSize(a.cfg.Sync.QueueSize),
		reorder.WithCompensation(a.cfg.Sync.CompensateEnabled()),
		reorder.WithPublisher(a.bus),
		reorder.WithMetrics(metrics.New(scope.Board())),
	)

	if err := c.Refresh(ctx); err != nil {
		a.logger.Warn("initial refresh failed", "scope", scope, "error", err)
		_ = c.Close()
		a.mu.Lock()
		if a.boards[scope] == b {
			delete(a.boards, scope)
		}
		a.mu.Unlock()
		b.err = err
		return nil, err
	}

	b.c = c
	return c, nil
}

// RefreshScope refreshes the board for scope if it is open. Closed boards
// hydrate from the store when they are next opened.
func (a *App) RefreshScope(ctx context.Context, scope types.Scope) error {
	a.mu.Lock()
	b, ok := a.boards[scope]
	a.mu.Unlock()
	if !ok {
		return nil
	}
	c, err := b.wait(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		// The failed open is retried by the next Board call.
		return nil
	}
	return c.Refresh(ctx)
}

// Close stops every board and releases registered resources.
func (a *App) Close() error {
	a.mu.Lock()
	boards := a.boards
	a.boards = make(map[types.Scope]*board)
	a.mu.Unlock()

	var errs []error
	for _, b := range boards {
		<-b.ready
		if b.c != nil {
			errs = append(errs, b.c.Close())
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	return errors.Join(errs...)
}
