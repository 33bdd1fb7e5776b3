package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/cadence/internal/database"
	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/types"
)

// SetupTestDB creates an in-memory database with full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// CreateTestItem appends an item to the end of a bucket and returns it
func CreateTestItem(t *testing.T, db *sql.DB, scope types.Scope, bucket types.Bucket, title string) models.Item {
	t.Helper()
	item, err := database.NewItemRepo(db).Insert(context.Background(), models.Item{
		Scope:   scope,
		Bucket:  bucket,
		Payload: models.Payload{Title: title},
	})
	if err != nil {
		t.Fatalf("Failed to create test item: %v", err)
	}
	return *item
}

// CreateTestItems appends one item per title and returns their ids in order
func CreateTestItems(t *testing.T, db *sql.DB, scope types.Scope, bucket types.Bucket, titles ...string) []types.ItemID {
	t.Helper()
	ids := make([]types.ItemID, 0, len(titles))
	for _, title := range titles {
		ids = append(ids, CreateTestItem(t, db, scope, bucket, title).ID)
	}
	return ids
}

// BucketOrder reads the ids of a bucket in position order straight from the database
func BucketOrder(t *testing.T, db *sql.DB, scope types.Scope, bucket types.Bucket) []types.ItemID {
	t.Helper()
	rows, err := db.QueryContext(context.Background(),
		`SELECT id FROM items WHERE scope = ? AND bucket = ? ORDER BY position, id`, scope, bucket)
	if err != nil {
		t.Fatalf("Failed to query bucket: %v", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []types.ItemID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			t.Fatalf("Failed to scan id: %v", err)
		}
		ids = append(ids, types.ItemID(id))
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Failed to read bucket: %v", err)
	}
	return ids
}
