// Package ordering holds the in-memory ordered collection and the pure reorder planner.
package ordering

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/types"
)

// Store is the local, possibly optimistic, view of one board.
// Reads are safe while a move is in flight; writers are serialized by the
// coordinator that owns the store.
type Store struct {
	mu      sync.RWMutex
	buckets models.BucketSet
	state   Snapshot

	// pending is the pre-move snapshot retained between ApplyMove and Commit/Rollback.
	pending *Snapshot
}

// NewStore creates an empty store whose valid buckets are fixed to buckets.
func NewStore(buckets models.BucketSet) *Store {
	s := &Store{buckets: buckets}
	s.state = emptySnapshot(buckets)
	return s
}

func emptySnapshot(buckets models.BucketSet) Snapshot {
	snap := Snapshot{buckets: make(map[types.Bucket][]models.Item, buckets.Len())}
	for _, b := range buckets.Labels() {
		snap.buckets[b] = nil
	}
	return snap
}

// Buckets returns the store's bucket set.
func (s *Store) Buckets() models.BucketSet {
	return s.buckets
}

// ItemsInBucket returns the bucket's items sorted ascending by position.
func (s *Store) ItemsInBucket(b types.Bucket) []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ItemsInBucket(b)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Get returns the item with the given id.
func (s *Store) Get(id types.ItemID) (models.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, idx, ok := s.state.Locate(id)
	if !ok {
		return models.Item{}, false
	}
	return s.state.buckets[b][idx], true
}

// InFlight reports whether a move has been applied but not yet committed or rolled back.
func (s *Store) InFlight() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending != nil
}

// ReplaceAll resets the collection from a fresh fetch. Positions are re-derived
// densely per bucket, ordered by the fetched position and then by id, so gaps left
// by deletions are closed. The returned updates list every row whose derived
// position differs from the fetched one; the caller decides whether to persist them.
func (s *Store) ReplaceAll(items []models.Item) ([]models.PositionUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		return nil, &SyncError{Op: "replace all", Err: ErrMoveInFlight}
	}

	next := emptySnapshot(s.buckets)
	for _, it := range items {
		if !s.buckets.Contains(it.Bucket) {
			return nil, fmt.Errorf("%w: item %s has bucket %q", ErrInvalidBucket, it.ID, it.Bucket)
		}
		next.buckets[it.Bucket] = append(next.buckets[it.Bucket], it)
	}

	var fixes []models.PositionUpdate
	for _, b := range s.buckets.Labels() {
		bucket := next.buckets[b]
		slices.SortStableFunc(bucket, func(a, c models.Item) int {
			if n := cmp.Compare(a.Position, c.Position); n != 0 {
				return n
			}
			return cmp.Compare(a.ID, c.ID)
		})
		for i := range bucket {
			if bucket[i].Position != i {
				fixes = append(fixes, models.PositionUpdate{ItemID: bucket[i].ID, Bucket: b, Position: i})
				bucket[i].Position = i
			}
		}
	}

	s.state = next
	return fixes, nil
}

// ApplyMove plans req against the current state and applies it optimistically.
// It returns the pre-move snapshot, which stays retained until Commit or Rollback.
// A no-op move changes nothing and opens no in-flight window.
func (s *Store) ApplyMove(req models.MoveRequest) (Snapshot, MovePlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		return Snapshot{}, MovePlan{}, &SyncError{Op: "apply move", Err: ErrMoveInFlight}
	}

	plan, err := Plan(s.state, s.buckets, req)
	if err != nil {
		return Snapshot{}, MovePlan{}, err
	}
	if plan.IsNoop() {
		return s.state.clone(), plan, nil
	}

	prev := s.state.clone()
	next := s.state.clone()
	for b, items := range plan.reordered {
		next.buckets[b] = items
	}
	s.state = next
	s.pending = &prev

	return prev, plan, nil
}

// Commit discards the retained snapshot, ending the in-flight window.
func (s *Store) Commit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

// Rollback restores prev and ends the in-flight window.
func (s *Store) Rollback(prev Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = prev.clone()
	s.pending = nil
}
