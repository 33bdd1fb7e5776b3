package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/types"
)

const testScope types.Scope = "focus:p1"

func insert(t *testing.T, repo *ItemRepo, bucket types.Bucket, title string) *models.Item {
	t.Helper()
	it, err := repo.Insert(context.Background(), models.Item{
		Scope:   testScope,
		Bucket:  bucket,
		Payload: models.Payload{Title: title},
	})
	require.NoError(t, err)
	return it
}

func TestItemRepo_InsertAppendsToBucket(t *testing.T) {
	repo := NewItemRepo(setupTestDB(t))

	a := insert(t, repo, "backlog", "a")
	b := insert(t, repo, "backlog", "b")
	c := insert(t, repo, "done", "c")

	assert.Equal(t, 0, a.Position)
	assert.Equal(t, 1, b.Position)
	assert.Equal(t, 0, c.Position)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestItemRepo_InsertKeepsGivenID(t *testing.T) {
	repo := NewItemRepo(setupTestDB(t))

	it, err := repo.Insert(context.Background(), models.Item{
		ID:      "fixed-id",
		Scope:   testScope,
		Bucket:  "backlog",
		Payload: models.Payload{Title: "x", Notes: "# heading"},
	})
	require.NoError(t, err)
	assert.Equal(t, types.ItemID("fixed-id"), it.ID)
	assert.Equal(t, "# heading", it.Payload.Notes)
}

func TestItemRepo_InsertRequiresScope(t *testing.T) {
	repo := NewItemRepo(setupTestDB(t))

	_, err := repo.Insert(context.Background(), models.Item{Bucket: "backlog"})
	assert.Error(t, err)
}

func TestItemRepo_FetchAllFiltersByScope(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepo(setupTestDB(t))

	insert(t, repo, "backlog", "a")
	insert(t, repo, "backlog", "b")
	_, err := repo.Insert(ctx, models.Item{Scope: "focus:other", Bucket: "backlog", Payload: models.Payload{Title: "z"}})
	require.NoError(t, err)

	items, err := repo.FetchAll(ctx, testScope)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Payload.Title)
	assert.Equal(t, "b", items[1].Payload.Title)
}

func TestItemRepo_UpdatePosition(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepo(setupTestDB(t))
	a := insert(t, repo, "backlog", "a")

	require.NoError(t, repo.UpdatePosition(ctx, a.ID, "done", 3))

	got, err := repo.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, types.Bucket("done"), got.Bucket)
	assert.Equal(t, 3, got.Position)
}

func TestItemRepo_UpdatePositionUnknownItem(t *testing.T) {
	repo := NewItemRepo(setupTestDB(t))

	err := repo.UpdatePosition(context.Background(), "missing", "done", 0)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemRepo_DeleteCompactsBucket(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepo(setupTestDB(t))
	a := insert(t, repo, "backlog", "a")
	b := insert(t, repo, "backlog", "b")
	c := insert(t, repo, "backlog", "c")
	other := insert(t, repo, "done", "other")

	require.NoError(t, repo.Delete(ctx, b.ID))

	items, err := repo.FetchAll(ctx, testScope)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, 0, items[0].Position)
	assert.Equal(t, c.ID, items[1].ID)
	assert.Equal(t, 1, items[1].Position)
	assert.Equal(t, other.ID, items[2].ID)
	assert.Equal(t, 0, items[2].Position)

	assert.ErrorIs(t, repo.Delete(ctx, b.ID), ErrItemNotFound)
}

func TestItemRepo_DeleteThenInsertAppendsLast(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepo(setupTestDB(t))
	m1 := insert(t, repo, "backlog", "m1")
	m2 := insert(t, repo, "backlog", "m2")
	m3 := insert(t, repo, "backlog", "m3")

	require.NoError(t, repo.Delete(ctx, m1.ID))
	a0 := insert(t, repo, "backlog", "a0")
	assert.Equal(t, 2, a0.Position)

	items, err := repo.FetchAll(ctx, testScope)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, want := range []types.ItemID{m2.ID, m3.ID, a0.ID} {
		assert.Equal(t, want, items[i].ID)
		assert.Equal(t, i, items[i].Position)
	}
}

func TestItemRepo_InsertAfterGapGoesPastHighestPosition(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepo(setupTestDB(t))
	insert(t, repo, "backlog", "a")
	b := insert(t, repo, "backlog", "b")

	// A gap written by another process is only closed by a refresh.
	require.NoError(t, repo.UpdatePosition(ctx, b.ID, "backlog", 4))

	c := insert(t, repo, "backlog", "c")
	assert.Equal(t, 5, c.Position)
}

func TestItemRepo_GetUnknownItem(t *testing.T) {
	_, err := NewItemRepo(setupTestDB(t)).Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestInitDB_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "cadence.db")

	db, err := InitDB(ctx, path)
	require.NoError(t, err)
	_, err = NewItemRepo(db).Insert(ctx, models.Item{Scope: testScope, Bucket: "review", Payload: models.Payload{Title: "kept"}})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = InitDB(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	items, err := NewItemRepo(db).FetchAll(ctx, testScope)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "kept", items[0].Payload.Title)
}
