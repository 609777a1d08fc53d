package persistence

import (
	"context"
	"encoding/json"
	"testing"

	"shipping-admin/internal/admin/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	cats := []*model.Category{
		{Meta: model.Meta{ID: 1, CreatedAt: "2026-09-01"}, Name: "Containers", Description: "Shipping containers"},
	}
	require.NoError(t, store.Save(ctx, model.CollectionCategories, cats))

	raw, err := store.Load(ctx, model.CollectionCategories)
	require.NoError(t, err)

	var got []*model.Category
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, cats, got)
}

func TestMemoryStore_SeedFallback(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Seed(model.CollectionUsers, json.RawMessage(`[{"id":7,"name":"Seeded"}]`))

	raw, err := store.Load(ctx, model.CollectionUsers)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":7,"name":"Seeded"}]`, string(raw))

	// A save shadows the seed.
	require.NoError(t, store.Save(ctx, model.CollectionUsers, []*model.User{}))
	raw, err = store.Load(ctx, model.CollectionUsers)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestMemoryStore_MissingCollectionDefaults(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	raw, err := store.Load(ctx, model.CollectionSuppliers)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	raw, err = store.Load(ctx, model.CollectionSettings)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))
}
