package reorder

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/cadence/internal/database"
	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/ordering"
	"github.com/thenoetrevino/cadence/internal/types"
)

const testScope types.Scope = "focus:test"

var errRemote = errors.New("remote unavailable")

// fakeRepo is an in-memory item store whose UpdatePosition can be intercepted.
type fakeRepo struct {
	mu    sync.Mutex
	items map[types.ItemID]models.Item
	calls []models.PositionUpdate

	// hook runs before each UpdatePosition is applied; n is the 1-based call number.
	hook     func(ctx context.Context, n int, u models.PositionUpdate) error
	fetchErr error
}

var _ database.ItemRepository = (*fakeRepo)(nil)

func newFakeRepo(layout map[types.Bucket][]types.ItemID) *fakeRepo {
	f := &fakeRepo{items: make(map[types.ItemID]models.Item)}
	for b, ids := range layout {
		for i, id := range ids {
			f.items[id] = models.Item{ID: id, Scope: testScope, Bucket: b, Position: i}
		}
	}
	return f
}

func (f *fakeRepo) FetchAll(_ context.Context, scope types.Scope) ([]models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var out []models.Item
	for _, it := range f.items {
		if it.Scope == scope {
			out = append(out, it)
		}
	}
	slices.SortFunc(out, func(a, b models.Item) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, id types.ItemID) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok {
		return nil, database.ErrItemNotFound
	}
	return &it, nil
}

func (f *fakeRepo) Insert(_ context.Context, item models.Item) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[item.ID] = item
	return &item, nil
}

func (f *fakeRepo) Delete(_ context.Context, id types.ItemID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return database.ErrItemNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) UpdatePosition(ctx context.Context, id types.ItemID, bucket types.Bucket, position int) error {
	u := models.PositionUpdate{ItemID: id, Bucket: bucket, Position: position}

	f.mu.Lock()
	f.calls = append(f.calls, u)
	n := len(f.calls)
	hook := f.hook
	f.mu.Unlock()

	if hook != nil {
		if err := hook(ctx, n, u); err != nil {
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok {
		return database.ErrItemNotFound
	}
	it.Bucket = bucket
	it.Position = position
	f.items[id] = it
	return nil
}

func (f *fakeRepo) setHook(h func(ctx context.Context, n int, u models.PositionUpdate) error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hook = h
}

func (f *fakeRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeRepo) resetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *fakeRepo) callIDs() []types.ItemID {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]types.ItemID, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.ItemID
	}
	return out
}

// remoteOrder returns the ids of bucket b ordered by their persisted position.
func (f *fakeRepo) remoteOrder(b types.Bucket) []types.ItemID {
	f.mu.Lock()
	defer f.mu.Unlock()
	var in []models.Item
	for _, it := range f.items {
		if it.Bucket == b {
			in = append(in, it)
		}
	}
	slices.SortFunc(in, func(a, c models.Item) int { return cmp.Compare(a.Position, c.Position) })
	return ids(in)
}

func ids(items []models.Item) []types.ItemID {
	out := make([]types.ItemID, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// stateRecorder collects transitions reported by WithStateHook.
type stateRecorder struct {
	mu     sync.Mutex
	states []State
}

func (r *stateRecorder) record(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *stateRecorder) count(s State) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.states {
		if got == s {
			n++
		}
	}
	return n
}

func (r *stateRecorder) snapshot() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.states)
}

var testBuckets = models.NewBucketSet("x", "y")

// newCoordinator hydrates a store from repo and returns a running coordinator.
// Calls made by the initial refresh are cleared.
func newCoordinator(t *testing.T, repo *fakeRepo, opts ...Option) *Coordinator {
	t.Helper()
	c := NewCoordinator(ordering.NewStore(testBuckets), repo, testScope, opts...)
	t.Cleanup(func() { c.Close() })
	require.NoError(t, c.Refresh(context.Background()))
	repo.resetCalls()
	return c
}
