package ordering

import (
	"fmt"

	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/types"
)

// Snapshot is an immutable copy of every bucket's ordered items.
// Within each slice the index equals the item's position.
type Snapshot struct {
	buckets map[types.Bucket][]models.Item
}

func (s Snapshot) clone() Snapshot {
	out := Snapshot{buckets: make(map[types.Bucket][]models.Item, len(s.buckets))}
	for b, items := range s.buckets {
		cp := make([]models.Item, len(items))
		copy(cp, items)
		out.buckets[b] = cp
	}
	return out
}

// ItemsInBucket returns a copy of the bucket's items in position order.
func (s Snapshot) ItemsInBucket(b types.Bucket) []models.Item {
	items := s.buckets[b]
	out := make([]models.Item, len(items))
	copy(out, items)
	return out
}

// Locate returns the bucket and index holding id.
func (s Snapshot) Locate(id types.ItemID) (types.Bucket, int, bool) {
	for b, items := range s.buckets {
		for i := range items {
			if items[i].ID == id {
				return b, i, true
			}
		}
	}
	return "", 0, false
}

// Len returns the total number of items.
func (s Snapshot) Len() int {
	n := 0
	for _, items := range s.buckets {
		n += len(items)
	}
	return n
}

// Equal reports whether both snapshots hold the same ids at the same
// bucket and position. Payloads are not compared.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.Len() != other.Len() {
		return false
	}
	for b, items := range s.buckets {
		theirs := other.buckets[b]
		if len(items) != len(theirs) {
			return false
		}
		for i := range items {
			if items[i].ID != theirs[i].ID || items[i].Position != theirs[i].Position {
				return false
			}
		}
	}
	return true
}

// CheckDense verifies that every bucket's positions are exactly 0..n-1
// and that every item's Bucket field matches the bucket holding it.
func CheckDense(s Snapshot) error {
	for b, items := range s.buckets {
		for i, it := range items {
			if it.Position != i {
				return fmt.Errorf("%w: bucket %q index %d has position %d", ErrNotDense, b, i, it.Position)
			}
			if it.Bucket != b {
				return fmt.Errorf("%w: item %s in bucket %q claims bucket %q", ErrNotDense, it.ID, b, it.Bucket)
			}
		}
	}
	return nil
}
