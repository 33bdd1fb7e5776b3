// Package item validates and performs item creation and removal outside the reorder core.
package item

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/cadence/internal/database"
	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/ordering"
	"github.com/thenoetrevino/cadence/internal/types"
)

const maxTitleLength = 255

// Service defines item business operations
type Service interface {
	Create(ctx context.Context, req CreateItemRequest) (*models.Item, error)
	Delete(ctx context.Context, id types.ItemID) error
	Reposition(ctx context.Context, id types.ItemID, bucket string, position int) error
	Get(ctx context.Context, id types.ItemID) (*models.Item, error)
	List(ctx context.Context, scope types.Scope) ([]models.Item, error)
}

// CreateItemRequest encapsulates all data needed to create an item
type CreateItemRequest struct {
	ID     types.ItemID // optional; generated when empty
	Scope  types.Scope
	Bucket string // matched case-insensitively against the board's buckets
	Title  string
	Notes  string
}

// BucketResolver returns the valid buckets of a scope's board.
type BucketResolver interface {
	BucketSetForScope(scope types.Scope) (models.BucketSet, error)
}

// Refresher re-derives local positions for a scope after the collection changed.
type Refresher interface {
	RefreshScope(ctx context.Context, scope types.Scope) error
}

// RefresherFunc adapts a function to Refresher.
type RefresherFunc func(ctx context.Context, scope types.Scope) error

func (f RefresherFunc) RefreshScope(ctx context.Context, scope types.Scope) error {
	return f(ctx, scope)
}

// service implements Service interface
type service struct {
	repo      database.ItemRepository
	buckets   BucketResolver
	refresher Refresher
}

// NewService creates a new item service. refresher may be nil.
func NewService(repo database.ItemRepository, buckets BucketResolver, refresher Refresher) Service {
	return &service{
		repo:      repo,
		buckets:   buckets,
		refresher: refresher,
	}
}

// Create validates req and appends the new item at the end of its bucket
func (s *service) Create(ctx context.Context, req CreateItemRequest) (*models.Item, error) {
	bucket, err := s.validateCreate(req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, models.Item{
		ID:     req.ID,
		Scope:  req.Scope,
		Bucket: bucket,
		Payload: models.Payload{
			Title: strings.TrimSpace(req.Title),
			Notes: req.Notes,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.refresh(ctx, req.Scope)
	return created, nil
}

func (s *service) validateCreate(req CreateItemRequest) (types.Bucket, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", ErrTitleTooLong
	}

	if _, owner, ok := strings.Cut(req.Scope.String(), ":"); !ok || owner == "" || req.Scope.Board() == "" {
		return "", ErrInvalidScope
	}

	set, err := s.buckets.BucketSetForScope(req.Scope)
	if err != nil {
		return "", err
	}
	bucket, ok := set.Lookup(req.Bucket)
	if !ok {
		return "", fmt.Errorf("%w: %q is not one of %v", ordering.ErrInvalidBucket, req.Bucket, set.Labels())
	}
	return bucket, nil
}

// Delete removes an item. The store closes the gap in its bucket.
func (s *service) Delete(ctx context.Context, id types.ItemID) error {
	if strings.TrimSpace(id.String()) == "" {
		return ErrInvalidItemID
	}

	it, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.refresh(ctx, it.Scope)
	return nil
}

// Reposition writes one planned position change after checking the bucket
// against the item's board. Callers send a full diff, so it does not refresh.
func (s *service) Reposition(ctx context.Context, id types.ItemID, bucket string, position int) error {
	if strings.TrimSpace(id.String()) == "" {
		return ErrInvalidItemID
	}
	if position < 0 {
		return ErrNegativePosition
	}

	it, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	set, err := s.buckets.BucketSetForScope(it.Scope)
	if err != nil {
		return err
	}
	target, ok := set.Lookup(bucket)
	if !ok {
		return fmt.Errorf("%w: %q is not one of %v", ordering.ErrInvalidBucket, bucket, set.Labels())
	}

	if err := s.repo.UpdatePosition(ctx, id, target, position); err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}
	return nil
}

// Get returns a single item
func (s *service) Get(ctx context.Context, id types.ItemID) (*models.Item, error) {
	if strings.TrimSpace(id.String()) == "" {
		return nil, ErrInvalidItemID
	}
	return s.repo.Get(ctx, id)
}

// List returns all items of a scope as stored, ordered by bucket and position
func (s *service) List(ctx context.Context, scope types.Scope) ([]models.Item, error) {
	items, err := s.repo.FetchAll(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// refresh failures are logged, not returned: the mutation itself already succeeded.
func (s *service) refresh(ctx context.Context, scope types.Scope) {
	if s.refresher == nil {
		return
	}
	if err := s.refresher.RefreshScope(ctx, scope); err != nil {
		slog.Warn("refresh after mutation failed", "scope", scope, "error", err)
	}
}
