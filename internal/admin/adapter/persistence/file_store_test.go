package persistence

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"shipping-admin/internal/admin/domain/model"
	apperrors "shipping-admin/internal/shared/errors"
	"shipping-admin/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) (*FileStore, string, string) {
	t.Helper()
	cacheDir := filepath.Join(t.TempDir(), "cache")
	seedDir := t.TempDir()
	log := logger.NewLogger()
	store := NewFileStore(cacheDir, NewSeedSource(seedDir, log), log)
	return store, cacheDir, seedDir
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	store, _, _ := newTestFileStore(t)
	ctx := context.Background()

	products := []*model.Product{
		{Meta: model.Meta{ID: 1, CreatedAt: "2026-09-01"}, Name: "Rope", Category: "Safety", Price: 19.99, Stock: 50, Status: "In Stock"},
		{Meta: model.Meta{ID: 2, CreatedAt: "2026-09-01"}, Name: "Compass", Category: "Navigation", Price: 45.50, Stock: 12},
	}
	require.NoError(t, store.Save(ctx, model.CollectionProducts, products))

	raw, err := store.Load(ctx, model.CollectionProducts)
	require.NoError(t, err)

	var got []*model.Product
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, products, got)
}

func TestFileStore_LoadFallsBackToSeed(t *testing.T) {
	store, _, seedDir := newTestFileStore(t)
	ctx := context.Background()

	seed := `[{"id":1,"name":"Hamburg Port Authority","contactPerson":"J. Meyer","email":"port@example.com"}]`
	require.NoError(t, os.WriteFile(filepath.Join(seedDir, "suppliers.json"), []byte(seed), 0o644))

	raw, err := store.Load(ctx, model.CollectionSuppliers)
	require.NoError(t, err)
	assert.JSONEq(t, seed, string(raw))
}

func TestFileStore_CacheShadowsSeed(t *testing.T) {
	store, _, seedDir := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(seedDir, "users.json"), []byte(`[{"id":99}]`), 0o644))
	require.NoError(t, store.Save(ctx, model.CollectionUsers, []*model.User{
		{Meta: model.Meta{ID: 1}, Name: "Ada", Email: "ada@example.com"},
	}))

	raw, err := store.Load(ctx, model.CollectionUsers)
	require.NoError(t, err)

	var got []*model.User
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestFileStore_LoadMissingReturnsEmptyDefaults(t *testing.T) {
	store, _, _ := newTestFileStore(t)
	ctx := context.Background()

	raw, err := store.Load(ctx, model.CollectionOrders)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	raw, err = store.Load(ctx, model.CollectionSettings)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))
}

func TestFileStore_CorruptCacheDegradesToSeed(t *testing.T) {
	store, cacheDir, seedDir := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(seedDir, "orders.json"), []byte(`[{"id":1}]`), 0o644))
	require.NoError(t, os.MkdirAll(cacheDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "orders.json"), []byte(`{not json`), 0o644))

	raw, err := store.Load(ctx, model.CollectionOrders)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(raw))
}

func TestFileStore_RejectsUnsafeNames(t *testing.T) {
	store, _, _ := newTestFileStore(t)
	ctx := context.Background()

	_, err := store.Load(ctx, "../escape")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCollection)

	err = store.Save(ctx, "UPPER", []int{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCollection)
}
