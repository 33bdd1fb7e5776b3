package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/types"
)

const itemColumns = `id, scope, bucket, position, title, notes, created_at, updated_at`

// ItemRepo is the SQLite implementation of ItemRepository.
type ItemRepo struct {
	db *sql.DB
}

// NewItemRepo creates an ItemRepo wrapping the given database connection.
func NewItemRepo(db *sql.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var (
		it    models.Item
		notes sql.NullString
	)
	if err := row.Scan(
		&it.ID, &it.Scope, &it.Bucket, &it.Position,
		&it.Payload.Title, &notes, &it.CreatedAt, &it.UpdatedAt,
	); err != nil {
		return nil, err
	}
	it.Payload.Notes = NullStringToString(notes)
	return &it, nil
}

// FetchAll returns every item in scope, ordered by bucket then position.
func (r *ItemRepo) FetchAll(ctx context.Context, scope types.Scope) ([]models.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+`
		 FROM items
		 WHERE scope = ?
		 ORDER BY bucket, position, id`,
		scope,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for scope %s: %w", scope, err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *it)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Get retrieves a single item by id.
func (r *ItemRepo) Get(ctx context.Context, id types.ItemID) (*models.Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %s: %w", id, err)
	}
	return it, nil
}

// Insert appends item to the end of its bucket. A missing id is generated.
// The stored position is one past the bucket's highest position, which is the
// bucket size while the bucket is dense.
func (r *ItemRepo) Insert(ctx context.Context, item models.Item) (*models.Item, error) {
	if item.ID == "" {
		item.ID = types.ItemID(uuid.New().String())
	}
	if strings.TrimSpace(string(item.Scope)) == "" {
		return nil, errors.New("item scope is required")
	}

	var created *models.Item
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var next int
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position) + 1, 0) FROM items WHERE scope = ? AND bucket = ?`,
			item.Scope, item.Bucket,
		).Scan(&next); err != nil {
			return fmt.Errorf("failed to find end of bucket: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO items (id, scope, bucket, position, title, notes)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			item.ID, item.Scope, item.Bucket, next, item.Payload.Title, item.Payload.Notes,
		); err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		it, err := scanItem(tx.QueryRowContext(ctx,
			`SELECT `+itemColumns+` FROM items WHERE id = ?`, item.ID))
		if err != nil {
			return fmt.Errorf("failed to read back item: %w", err)
		}
		created = it
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdatePosition sets an item's bucket and position.
func (r *ItemRepo) UpdatePosition(ctx context.Context, id types.ItemID, bucket types.Bucket, position int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE items
		 SET bucket = ?, position = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		bucket, position, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update position of %s: %w", id, err)
	}
	return rowsAffectedOrNotFound(res, id.String())
}

// Delete removes an item and shifts the items after it in the same bucket down by one.
func (r *ItemRepo) Delete(ctx context.Context, id types.ItemID) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var (
			scope    types.Scope
			bucket   types.Bucket
			position int
		)
		err := tx.QueryRowContext(ctx,
			`SELECT scope, bucket, position FROM items WHERE id = ?`, id,
		).Scan(&scope, &bucket, &position)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrItemNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("failed to get item %s: %w", id, err)
		}

		res, err := tx.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete item %s: %w", id, err)
		}
		if err := rowsAffectedOrNotFound(res, id.String()); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE items
			 SET position = position - 1, updated_at = CURRENT_TIMESTAMP
			 WHERE scope = ? AND bucket = ? AND position > ?`,
			scope, bucket, position,
		); err != nil {
			return fmt.Errorf("failed to compact bucket %s: %w", bucket, err)
		}
		return nil
	})
}
