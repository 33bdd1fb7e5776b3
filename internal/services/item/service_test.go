package item

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/cadence/internal/config"
	"github.com/thenoetrevino/cadence/internal/database"
	"github.com/thenoetrevino/cadence/internal/ordering"
	"github.com/thenoetrevino/cadence/internal/types"
)

const scope types.Scope = "focus:p1"

type refreshRecorder struct {
	scopes []types.Scope
	err    error
}

func (r *refreshRecorder) RefreshScope(_ context.Context, s types.Scope) error {
	r.scopes = append(r.scopes, s)
	return r.err
}

func setupService(t *testing.T) (Service, *database.ItemRepo, *refreshRecorder) {
	t.Helper()
	db, err := database.InitDB(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := database.NewItemRepo(db)
	rec := &refreshRecorder{}
	return NewService(repo, config.Default(), rec), repo, rec
}

func TestCreate_AppendsAndRefreshes(t *testing.T) {
	svc, _, rec := setupService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateItemRequest{Scope: scope, Bucket: "backlog", Title: "first"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateItemRequest{Scope: scope, Bucket: "BACKLOG", Title: "  second  "})
	require.NoError(t, err)

	assert.Equal(t, 0, a.Position)
	assert.Equal(t, 1, b.Position)
	assert.Equal(t, types.Bucket("backlog"), b.Bucket, "bucket names are matched case-insensitively")
	assert.Equal(t, "second", b.Payload.Title)
	assert.Equal(t, []types.Scope{scope, scope}, rec.scopes)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, rec := setupService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateItemRequest
		want error
	}{
		{"empty title", CreateItemRequest{Scope: scope, Bucket: "backlog", Title: "   "}, ErrEmptyTitle},
		{"long title", CreateItemRequest{Scope: scope, Bucket: "backlog", Title: strings.Repeat("x", 256)}, ErrTitleTooLong},
		{"bad scope", CreateItemRequest{Scope: "focus", Bucket: "backlog", Title: "t"}, ErrInvalidScope},
		{"unknown board", CreateItemRequest{Scope: "nope:1", Bucket: "backlog", Title: "t"}, config.ErrUnknownBoard},
		{"unknown bucket", CreateItemRequest{Scope: scope, Bucket: "archived", Title: "t"}, ordering.ErrInvalidBucket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, rec.scopes, "failed validation never refreshes")
}

func TestCreate_TitleAtLimit(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.Create(context.Background(), CreateItemRequest{Scope: scope, Bucket: "done", Title: strings.Repeat("é", 255)})
	assert.NoError(t, err)
}

func TestDelete_RefreshesOwningScope(t *testing.T) {
	svc, repo, rec := setupService(t)
	ctx := context.Background()
	it, err := svc.Create(ctx, CreateItemRequest{Scope: "playbook:ag1", Bucket: "all", Title: "Warmup"})
	require.NoError(t, err)
	rec.scopes = nil

	require.NoError(t, svc.Delete(ctx, it.ID))

	assert.Equal(t, []types.Scope{"playbook:ag1"}, rec.scopes)
	_, err = repo.Get(ctx, it.ID)
	assert.ErrorIs(t, err, database.ErrItemNotFound)
}

func TestDelete_Errors(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, ""), ErrInvalidItemID)
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), database.ErrItemNotFound)
}

func TestRefreshFailureDoesNotFailMutation(t *testing.T) {
	svc, _, rec := setupService(t)
	rec.err = errors.New("remote down")

	_, err := svc.Create(context.Background(), CreateItemRequest{Scope: scope, Bucket: "review", Title: "t"})
	assert.NoError(t, err)
}

func TestGetAndList(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()
	a, err := svc.Create(ctx, CreateItemRequest{Scope: scope, Bucket: "review", Title: "a", Notes: "# notes"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "# notes", got.Payload.Notes)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidItemID)

	items, err := svc.List(ctx, scope)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestReposition(t *testing.T) {
	svc, repo, rec := setupService(t)
	ctx := context.Background()
	it, err := svc.Create(ctx, CreateItemRequest{Scope: scope, Bucket: "backlog", Title: "a"})
	require.NoError(t, err)
	rec.scopes = nil

	require.NoError(t, svc.Reposition(ctx, it.ID, "Done", 0))

	stored, err := repo.Get(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, types.Bucket("done"), stored.Bucket)
	assert.Empty(t, rec.scopes, "position writes do not refresh")

	assert.ErrorIs(t, svc.Reposition(ctx, it.ID, "nonsense", 0), ordering.ErrInvalidBucket)
	assert.ErrorIs(t, svc.Reposition(ctx, it.ID, "done", -1), ErrNegativePosition)
	assert.ErrorIs(t, svc.Reposition(ctx, "", "done", 0), ErrInvalidItemID)
	assert.ErrorIs(t, svc.Reposition(ctx, "missing", "done", 0), database.ErrItemNotFound)

	stored, err = repo.Get(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, types.Bucket("done"), stored.Bucket, "rejected writes leave the item alone")
}

func TestDeleteThenCreateAppendsLast(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	var ids []types.ItemID
	for _, title := range []string{"m1", "m2", "m3"} {
		it, err := svc.Create(ctx, CreateItemRequest{Scope: scope, Bucket: "backlog", Title: title})
		require.NoError(t, err)
		ids = append(ids, it.ID)
	}

	require.NoError(t, svc.Delete(ctx, ids[0]))
	a0, err := svc.Create(ctx, CreateItemRequest{Scope: scope, Bucket: "backlog", Title: "a0"})
	require.NoError(t, err)
	assert.Equal(t, 2, a0.Position)

	items, err := svc.List(ctx, scope)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, want := range []types.ItemID{ids[1], ids[2], a0.ID} {
		assert.Equal(t, want, items[i].ID)
		assert.Equal(t, i, items[i].Position)
	}
}
