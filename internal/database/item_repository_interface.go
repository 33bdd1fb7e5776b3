package database

import (
	"context"

	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/types"
)

// ItemReader defines read operations for items.
type ItemReader interface {
	FetchAll(ctx context.Context, scope types.Scope) ([]models.Item, error)
	Get(ctx context.Context, id types.ItemID) (*models.Item, error)
}

// ItemWriter defines creation and removal of items.
type ItemWriter interface {
	Insert(ctx context.Context, item models.Item) (*models.Item, error)
	Delete(ctx context.Context, id types.ItemID) error
}

// ItemMover persists one planned position change.
type ItemMover interface {
	UpdatePosition(ctx context.Context, id types.ItemID, bucket types.Bucket, position int) error
}

// ItemRepository is the remote ordered-item store.
type ItemRepository interface {
	ItemReader
	ItemWriter
	ItemMover
}

// Compile-time verification that *ItemRepo implements ItemRepository
var _ ItemRepository = (*ItemRepo)(nil)
