package usecase

import (
	"context"
	"testing"
	"time"

	"shipping-admin/internal/admin/domain/model"
	"shipping-admin/internal/shared/eventbus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboardFixture struct {
	h         *harness
	users     *Repository[*model.User]
	products  *Repository[*model.Product]
	orders    *Repository[*model.Order]
	dashboard *Dashboard
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()
	h := newHarness(t)

	users := NewRepository(UserSchema(), h.store, h.changes, h.notifier, h.gate(), h.log)
	products := NewRepository(ProductSchema(), h.store, h.changes, h.notifier, h.gate(), h.log)
	orders := NewRepository(OrderSchema(&ProductPricer{Products: products}), h.store, h.changes, h.notifier, h.gate(), h.log)
	categories := NewRepository(CategorySchema(), h.store, h.changes, h.notifier, h.gate(), h.log)
	suppliers := NewRepository(SupplierSchema(), h.store, h.changes, h.notifier, h.gate(), h.log)

	dashboard := NewDashboard(users, products, orders, categories, suppliers, h.changes, h.bus, h.log)

	return &dashboardFixture{h: h, users: users, products: products, orders: orders, dashboard: dashboard}
}

func TestDashboard_StatsAggregateCollections(t *testing.T) {
	f := newDashboardFixture(t)
	ctx := context.Background()

	_, err := f.users.Create(ctx, &model.User{Name: "Ada", Email: "ada@freight.test", Status: "active"})
	require.NoError(t, err)
	_, err = f.users.Create(ctx, &model.User{Name: "Grace", Email: "grace@freight.test", Status: "active"})
	require.NoError(t, err)
	_, err = f.users.Create(ctx, &model.User{Name: "Edsger", Email: "edsger@freight.test", Status: "inactive"})
	require.NoError(t, err)

	_, err = f.products.Create(ctx, &model.Product{Name: "Mooring Rope", Category: "Deck Equipment", Price: 10, Stock: 40})
	require.NoError(t, err)
	_, err = f.products.Create(ctx, &model.Product{Name: "Cargo Net", Category: "Deck Equipment", Price: 45.5, Stock: 12})
	require.NoError(t, err)

	_, err = f.orders.Create(ctx, &model.Order{Customer: "Dockside Ltd", Product: "Mooring Rope", Quantity: 3, Status: "pending"})
	require.NoError(t, err)
	_, err = f.orders.Create(ctx, &model.Order{Customer: "Quayside SA", Product: "Cargo Net", Quantity: 2, Status: "shipped"})
	require.NoError(t, err)

	stats := f.dashboard.Stats(ctx)
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 121.00, stats.TotalRevenue)
	assert.Equal(t, map[string]int{"active": 2, "inactive": 1}, stats.UsersByStatus)
	assert.Equal(t, map[string]int{"Deck Equipment": 2}, stats.ProductsByCategory)
	assert.Equal(t, map[string]int{"pending": 1, "shipped": 1}, stats.OrdersByStatus)
}

func TestDashboard_MissingLabelsGroupAsUnknown(t *testing.T) {
	f := newDashboardFixture(t)
	ctx := context.Background()

	_, err := f.users.Create(ctx, &model.User{Name: "Ada", Email: "ada@freight.test"})
	require.NoError(t, err)

	stats := f.dashboard.Stats(ctx)
	assert.Equal(t, map[string]int{"unknown": 1}, stats.UsersByStatus)
}

func TestDashboard_StatsAreCachedUntilInvalidated(t *testing.T) {
	f := newDashboardFixture(t)
	ctx := context.Background()

	first := f.dashboard.Stats(ctx)
	again := f.dashboard.Stats(ctx)
	assert.Same(t, first, again)

	f.dashboard.Invalidate()
	recomputed := f.dashboard.Stats(ctx)
	assert.NotSame(t, first, recomputed)
}

func TestDashboard_DataChangedEventInvalidatesCache(t *testing.T) {
	f := newDashboardFixture(t)
	ctx := context.Background()

	first := f.dashboard.Stats(ctx)

	require.NoError(t, f.h.bus.Publish(ctx, eventbus.NewBasicEvent(eventbus.EventTypeDataChanged, "user")))

	recomputed := f.dashboard.Stats(ctx)
	assert.NotSame(t, first, recomputed)
}

func TestDashboard_RecentActivitySeverityAndLabels(t *testing.T) {
	f := newDashboardFixture(t)
	ctx := context.Background()

	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	f.h.changes.now = func() time.Time { return base.Add(-2 * time.Hour) }
	f.h.changes.Record(ctx, "product", "deleted", "Mooring Rope")
	f.h.changes.now = func() time.Time { return base.Add(-30 * time.Second) }
	f.h.changes.Record(ctx, "user", "created", "Ada")
	f.dashboard.now = func() time.Time { return base }

	items := f.dashboard.RecentActivity(ctx, 10)
	require.Len(t, items, 2)

	assert.Equal(t, "User created: Ada", items[0].Message)
	assert.Equal(t, "success", items[0].Severity)
	assert.Equal(t, "Just now", items[0].When)

	assert.Equal(t, "Product deleted: Mooring Rope", items[1].Message)
	assert.Equal(t, "error", items[1].Severity)
	assert.Equal(t, "2h ago", items[1].When)
}

func TestRelativeLabel(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Just now", relativeLabel(now, now.Add(-10*time.Second)))
	assert.Equal(t, "5m ago", relativeLabel(now, now.Add(-5*time.Minute)))
	assert.Equal(t, "3h ago", relativeLabel(now, now.Add(-3*time.Hour)))
	assert.Equal(t, "2d ago", relativeLabel(now, now.Add(-49*time.Hour)))
}
