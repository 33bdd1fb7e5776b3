package ordering

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/types"
)

// seedStore builds a store whose buckets hold the given ids in order.
func seedStore(t *testing.T, buckets models.BucketSet, layout map[types.Bucket][]types.ItemID) *Store {
	t.Helper()
	var items []models.Item
	for b, ids := range layout {
		for i, id := range ids {
			items = append(items, models.Item{ID: id, Bucket: b, Position: i})
		}
	}
	s := NewStore(buckets)
	fixes, err := s.ReplaceAll(items)
	require.NoError(t, err)
	require.Empty(t, fixes)
	return s
}

func ids(items []models.Item) []types.ItemID {
	out := make([]types.ItemID, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func updateIDs(updates []models.PositionUpdate) []types.ItemID {
	out := make([]types.ItemID, len(updates))
	for i, u := range updates {
		out[i] = u.ItemID
	}
	return out
}
