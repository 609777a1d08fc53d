package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"shipping-admin/internal/admin/adapter/persistence"
	"shipping-admin/internal/admin/domain/model"
	apperrors "shipping-admin/internal/shared/errors"
	"shipping-admin/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExporter(t *testing.T, store *persistence.MemoryStore) *Exporter {
	t.Helper()
	return NewExporter(store, logger.NewLoggerWithConfig("error", "text"))
}

func TestExporter_CSVColumnsFollowFirstRecordKeyOrder(t *testing.T) {
	store := persistence.NewMemoryStore()
	store.Seed(model.CollectionUsers, json.RawMessage(
		`[{"id":1,"name":"Ada","email":"ada@freight.test"},{"email":"grace@freight.test","id":2,"name":"Grace"}]`))
	exporter := newTestExporter(t, store)

	out, err := exporter.ExportCSV(context.Background(), model.CollectionUsers)
	require.NoError(t, err)

	assert.Equal(t,
		"id,name,email\n1,Ada,ada@freight.test\n2,Grace,grace@freight.test\n",
		string(out))
}

func TestExporter_CSVMissingFieldsEmitEmptyCells(t *testing.T) {
	store := persistence.NewMemoryStore()
	store.Seed(model.CollectionUsers, json.RawMessage(
		`[{"id":1,"name":"Ada","role":"admin"},{"id":2,"name":"Grace"}]`))
	exporter := newTestExporter(t, store)

	out, err := exporter.ExportCSV(context.Background(), model.CollectionUsers)
	require.NoError(t, err)

	assert.Equal(t, "id,name,role\n1,Ada,admin\n2,Grace,\n", string(out))
}

func TestExporter_CSVEmbedsNestedValuesAsJSON(t *testing.T) {
	store := persistence.NewMemoryStore()
	store.Seed(model.CollectionSuppliers, json.RawMessage(
		`[{"id":1,"name":"Dockside Ltd","productsSupplied":["Mooring Rope","Cargo Net"]}]`))
	exporter := newTestExporter(t, store)

	out, err := exporter.ExportCSV(context.Background(), model.CollectionSuppliers)
	require.NoError(t, err)

	assert.Equal(t,
		"id,name,productsSupplied\n1,Dockside Ltd,\"[\"\"Mooring Rope\"\",\"\"Cargo Net\"\"]\"\n",
		string(out))
}

func TestExporter_CSVEmptyCollection(t *testing.T) {
	store := persistence.NewMemoryStore()
	exporter := newTestExporter(t, store)

	out, err := exporter.ExportCSV(context.Background(), model.CollectionOrders)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestExporter_CSVRejectsSettings(t *testing.T) {
	store := persistence.NewMemoryStore()
	exporter := newTestExporter(t, store)

	_, err := exporter.ExportCSV(context.Background(), model.CollectionSettings)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestExporter_JSONIsIndented(t *testing.T) {
	store := persistence.NewMemoryStore()
	store.Seed(model.CollectionProducts, json.RawMessage(`[{"id":1,"name":"Mooring Rope"}]`))
	exporter := newTestExporter(t, store)

	out, err := exporter.ExportJSON(context.Background(), model.CollectionProducts)
	require.NoError(t, err)

	assert.JSONEq(t, `[{"id":1,"name":"Mooring Rope"}]`, string(out))
	assert.Contains(t, string(out), "\n  ")
}

func TestExporter_ExportAllBundlesCollectionsWithoutSuppliers(t *testing.T) {
	store := persistence.NewMemoryStore()
	store.Seed(model.CollectionUsers, json.RawMessage(`[{"id":1,"name":"Ada"}]`))
	store.Seed(model.CollectionSuppliers, json.RawMessage(`[{"id":1,"name":"Dockside Ltd"}]`))
	exporter := newTestExporter(t, store)

	out, err := exporter.ExportAll(context.Background())
	require.NoError(t, err)

	var bundle map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &bundle))

	assert.Contains(t, bundle, model.CollectionUsers)
	assert.Contains(t, bundle, model.CollectionProducts)
	assert.Contains(t, bundle, model.CollectionOrders)
	assert.Contains(t, bundle, model.CollectionCategories)
	assert.Contains(t, bundle, model.CollectionSettings)
	assert.Contains(t, bundle, "exportDate")
	assert.NotContains(t, bundle, model.CollectionSuppliers)
}
