// Package reorder synchronizes one board's ordered collection with the item store.
//
// A Coordinator owns an ordering.Store and a single worker goroutine. Moves and
// refreshes are queued FIFO; each move is planned, applied optimistically,
// persisted row by row, and then committed or rolled back before the next job
// is looked at.
package reorder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/cadence/internal/database"
	"github.com/thenoetrevino/cadence/internal/events"
	"github.com/thenoetrevino/cadence/internal/metrics"
	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/ordering"
	"github.com/thenoetrevino/cadence/internal/types"
)

// Refresher is implemented by anything that can re-hydrate local state from the item store.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Result is delivered once per submitted job.
type Result struct {
	// State is StateCommitted or StateRolledBack for moves that reached persistence,
	// StateIdle for no-ops, rejected moves and refreshes.
	State   State
	Noop    bool
	Updates []models.PositionUpdate
	Err     error
}

type jobKind int

const (
	jobMove jobKind = iota
	jobRefresh
)

type job struct {
	kind   jobKind
	ctx    context.Context
	req    models.MoveRequest
	result chan Result
}

// Coordinator serializes moves and refreshes for one scope.
type Coordinator struct {
	scope types.Scope
	store *ordering.Store
	repo  database.ItemRepository
	cfg   coordinatorConfig

	state   atomic.Int32
	waiting atomic.Int64

	mu     sync.RWMutex // guards closed against concurrent enqueue
	closed bool
	jobs   chan job
	done   chan struct{}
}

// Compile-time verification that *Coordinator implements Refresher
var _ Refresher = (*Coordinator)(nil)

// NewCoordinator starts a coordinator for scope. The store must not be written
// by anything else while the coordinator is running.
func NewCoordinator(store *ordering.Store, repo database.ItemRepository, scope types.Scope, opts ...Option) *Coordinator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Coordinator{
		scope: scope,
		store: store,
		repo:  repo,
		cfg:   cfg,
		jobs:  make(chan job, cfg.queueSize),
		done:  make(chan struct{}),
	}
	go c.run()

	slog.Debug("coordinator started", "scope", scope, "queue_size", cfg.queueSize)
	return c
}

// Scope returns the board this coordinator serves.
func (c *Coordinator) Scope() types.Scope { return c.scope }

// Store exposes the local collection for reads.
func (c *Coordinator) Store() *ordering.Store { return c.store }

// State returns the state of the job currently being processed.
func (c *Coordinator) State() State {
	return State(c.state.Load())
}

// Metrics returns the coordinator's metrics, which may be nil.
func (c *Coordinator) Metrics() *metrics.Metrics { return c.cfg.metrics }

// Submit queues a move and returns a channel that receives exactly one Result.
// Nobody is required to read it.
func (c *Coordinator) Submit(req models.MoveRequest) <-chan Result {
	return c.enqueue(context.Background(), job{kind: jobMove, ctx: context.Background(), req: req})
}

// Move queues a move and waits for its result. If ctx ends first the move still
// runs to completion and its result is dropped.
func (c *Coordinator) Move(ctx context.Context, req models.MoveRequest) error {
	res, err := c.wait(ctx, job{kind: jobMove, ctx: ctx, req: req})
	if err != nil {
		return err
	}
	return res.Err
}

// Refresh queues a full reload from the item store and waits for it.
// Compaction fixes are persisted; on failure the compacted local view is kept
// and ErrPersistenceFailed is returned.
func (c *Coordinator) Refresh(ctx context.Context) error {
	res, err := c.wait(ctx, job{kind: jobRefresh, ctx: ctx})
	if err != nil {
		return err
	}
	return res.Err
}

// Compact is Refresh that also reports the positions it rewrote.
func (c *Coordinator) Compact(ctx context.Context) ([]models.PositionUpdate, error) {
	res, err := c.wait(ctx, job{kind: jobRefresh, ctx: ctx})
	if err != nil {
		return nil, err
	}
	return res.Updates, res.Err
}

// Close stops accepting jobs, lets queued jobs finish and waits for the worker.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.jobs)
	}
	c.mu.Unlock()

	<-c.done
	return nil
}

func (c *Coordinator) wait(ctx context.Context, j job) (Result, error) {
	ch := c.enqueue(ctx, j)
	select {
	case res := <-ch:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func (c *Coordinator) enqueue(ctx context.Context, j job) <-chan Result {
	j.result = make(chan Result, 1)

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		j.result <- Result{Err: ErrClosed}
		return j.result
	}

	c.cfg.metrics.SetQueueDepth(int(c.waiting.Add(1)))
	select {
	case c.jobs <- j:
	case <-ctx.Done():
		c.cfg.metrics.SetQueueDepth(int(c.waiting.Add(-1)))
		j.result <- Result{Err: ctx.Err()}
	}
	return j.result
}

func (c *Coordinator) run() {
	defer close(c.done)

	for j := range c.jobs {
		c.cfg.metrics.SetQueueDepth(int(c.waiting.Add(-1)))

		var res Result
		switch j.kind {
		case jobMove:
			res = c.runMove(j)
		case jobRefresh:
			res = c.runRefresh(j)
		}
		c.transition(StateIdle)

		j.result <- res
	}

	slog.Debug("coordinator stopped", "scope", c.scope)
}

func (c *Coordinator) transition(s State) {
	c.state.Store(int32(s))
	if c.cfg.onTransition != nil {
		c.cfg.onTransition(s)
	}
}

func (c *Coordinator) runMove(j job) Result {
	start := time.Now()
	req := j.req
	log := slog.With("scope", c.scope, "item_id", req.ItemID, "bucket", req.TargetBucket, "index", req.TargetIndex)

	c.transition(StatePlanning)
	prev, plan, err := c.store.ApplyMove(req)
	if err != nil {
		log.Warn("move rejected", "error", err)
		c.cfg.metrics.RecordMove(metrics.OutcomeRejected, time.Since(start))
		return Result{State: StateIdle, Err: err}
	}
	if plan.IsNoop() {
		log.Debug("identity move, nothing to persist")
		c.cfg.metrics.RecordMove(metrics.OutcomeNoop, time.Since(start))
		return Result{State: StateIdle, Noop: true}
	}
	c.transition(StateApplied)

	c.transition(StatePersisting)
	ctx := context.WithoutCancel(j.ctx)
	written, err := c.persist(ctx, plan.Updates)
	if err != nil {
		log.Warn("move failed, rolling back", "written", written, "error", err)
		if c.cfg.compensate && written > 0 {
			c.compensate(ctx, prev, plan.Updates[:written])
		}
		c.store.Rollback(prev)
		c.transition(StateRolledBack)
		c.cfg.metrics.RecordMove(metrics.OutcomeRolledBack, time.Since(start))
		c.publish(events.Event{Type: events.EventMoveRolledBack, Move: &req, Updates: plan.Updates, Err: err})
		return Result{State: StateRolledBack, Updates: plan.Updates, Err: err}
	}

	c.store.Commit()
	c.transition(StateCommitted)
	c.cfg.metrics.RecordMove(metrics.OutcomeCommitted, time.Since(start))
	log.Info("move committed", "updates", len(plan.Updates))
	c.publish(events.Event{Type: events.EventMoveCommitted, Move: &req, Updates: plan.Updates})
	return Result{State: StateCommitted, Updates: plan.Updates}
}

// persist writes updates in order and stops at the first failure.
// It returns how many updates were written.
func (c *Coordinator) persist(ctx context.Context, updates []models.PositionUpdate) (int, error) {
	for i, u := range updates {
		err := c.updatePosition(ctx, u)
		c.cfg.metrics.RecordPersistCall(err)
		if err != nil {
			return i, &PersistenceError{Op: "update position", ItemID: u.ItemID.String(), Err: err}
		}
	}
	return len(updates), nil
}

func (c *Coordinator) updatePosition(ctx context.Context, u models.PositionUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.persistTimeout)
	defer cancel()
	return c.repo.UpdatePosition(ctx, u.ItemID, u.Bucket, u.Position)
}

// compensate best-effort restores the pre-move bucket and position of rows already written.
func (c *Coordinator) compensate(ctx context.Context, prev ordering.Snapshot, written []models.PositionUpdate) {
	for i := len(written) - 1; i >= 0; i-- {
		id := written[i].ItemID
		bucket, idx, ok := prev.Locate(id)
		if !ok {
			continue
		}
		err := c.updatePosition(ctx, models.PositionUpdate{ItemID: id, Bucket: bucket, Position: idx})
		c.cfg.metrics.RecordPersistCall(err)
		if err != nil {
			slog.Error("failed to revert position", "scope", c.scope, "item_id", id, "error", err)
		}
	}
}

func (c *Coordinator) runRefresh(j job) Result {
	ctx := context.WithoutCancel(j.ctx)
	log := slog.With("scope", c.scope)

	fetchCtx, cancel := context.WithTimeout(ctx, c.cfg.persistTimeout)
	items, err := c.repo.FetchAll(fetchCtx, c.scope)
	cancel()
	if err != nil {
		log.Warn("refresh fetch failed", "error", err)
		return Result{State: StateIdle, Err: &PersistenceError{Op: "fetch", Err: err}}
	}

	fixes, err := c.store.ReplaceAll(items)
	if err != nil {
		log.Error("refresh rejected", "error", err)
		return Result{State: StateIdle, Err: fmt.Errorf("failed to replace collection: %w", err)}
	}

	written, err := c.persist(ctx, fixes)
	c.cfg.metrics.IncRefreshes()
	c.publish(events.Event{Type: events.EventRefreshed, Updates: fixes[:written], Err: err})
	if err != nil {
		log.Warn("compaction not fully persisted", "written", written, "pending", len(fixes)-written, "error", err)
		return Result{State: StateIdle, Updates: fixes[:written], Err: err}
	}

	log.Debug("refreshed", "items", len(items), "compacted", len(fixes))
	return Result{State: StateIdle, Updates: fixes}
}

func (c *Coordinator) publish(e events.Event) {
	if c.cfg.publisher == nil {
		return
	}
	e.Scope = c.scope
	c.cfg.publisher.Publish(e)
}

// IsProgrammingError reports whether err is a planner/store rejection rather than a remote failure.
func IsProgrammingError(err error) bool {
	return errors.Is(err, ordering.ErrInvalidBucket) || errors.Is(err, ordering.ErrItemNotFound)
}
