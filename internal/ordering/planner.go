package ordering

import (
	"fmt"

	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/types"
)

// MovePlan is the outcome of planning a single move against a snapshot.
type MovePlan struct {
	Request models.MoveRequest

	Source types.Bucket
	From   int
	Target types.Bucket
	To     int // target index after clamping

	// Updates holds only the rows whose bucket or position changed:
	// source bucket first, then target bucket, each in ascending position.
	Updates []models.PositionUpdate

	reordered map[types.Bucket][]models.Item
}

// IsNoop reports whether the move leaves every row untouched.
func (p MovePlan) IsNoop() bool {
	return len(p.Updates) == 0
}

// Plan computes the new dense ordering for a move without mutating snap.
// The target index is clamped: to [0, n-1] within the same bucket and to
// [0, n] when crossing buckets.
func Plan(snap Snapshot, buckets models.BucketSet, req models.MoveRequest) (MovePlan, error) {
	if !buckets.Contains(req.TargetBucket) {
		return MovePlan{}, fmt.Errorf("%w: %q", ErrInvalidBucket, req.TargetBucket)
	}

	source, from, ok := snap.Locate(req.ItemID)
	if !ok {
		return MovePlan{}, fmt.Errorf("%w: %s", ErrItemNotFound, req.ItemID)
	}

	plan := MovePlan{
		Request:   req,
		Source:    source,
		From:      from,
		Target:    req.TargetBucket,
		reordered: make(map[types.Bucket][]models.Item, 2),
	}

	srcItems := snap.buckets[source]
	moved := srcItems[from]

	if source == req.TargetBucket {
		plan.To = clamp(req.TargetIndex, 0, len(srcItems)-1)
		if plan.To == from {
			return plan, nil
		}

		order := make([]models.Item, 0, len(srcItems))
		order = append(order, srcItems[:from]...)
		order = append(order, srcItems[from+1:]...)
		order = insertAt(order, plan.To, moved)

		plan.reordered[source] = reindex(order, source)
		plan.Updates = diff(srcItems, plan.reordered[source])
		return plan, nil
	}

	dstItems := snap.buckets[req.TargetBucket]
	plan.To = clamp(req.TargetIndex, 0, len(dstItems))

	remaining := make([]models.Item, 0, len(srcItems)-1)
	remaining = append(remaining, srcItems[:from]...)
	remaining = append(remaining, srcItems[from+1:]...)

	grown := make([]models.Item, 0, len(dstItems)+1)
	grown = append(grown, dstItems...)
	grown = insertAt(grown, plan.To, moved)

	plan.reordered[source] = reindex(remaining, source)
	plan.reordered[req.TargetBucket] = reindex(grown, req.TargetBucket)

	plan.Updates = append(diff(srcItems, plan.reordered[source]),
		diff(dstItems, plan.reordered[req.TargetBucket])...)
	return plan, nil
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

func insertAt(items []models.Item, idx int, it models.Item) []models.Item {
	items = append(items, models.Item{})
	copy(items[idx+1:], items[idx:])
	items[idx] = it
	return items
}

// reindex assigns bucket and dense positions in slice order.
func reindex(items []models.Item, bucket types.Bucket) []models.Item {
	for i := range items {
		items[i].Bucket = bucket
		items[i].Position = i
	}
	return items
}

// diff returns the rows of after whose bucket or position differs from before.
// Rows absent from before (an item arriving from another bucket) always count.
func diff(before, after []models.Item) []models.PositionUpdate {
	prev := make(map[types.ItemID]models.Item, len(before))
	for _, it := range before {
		prev[it.ID] = it
	}

	var updates []models.PositionUpdate
	for _, it := range after {
		old, ok := prev[it.ID]
		if ok && old.Bucket == it.Bucket && old.Position == it.Position {
			continue
		}
		updates = append(updates, models.PositionUpdate{
			ItemID:   it.ID,
			Bucket:   it.Bucket,
			Position: it.Position,
		})
	}
	return updates
}
