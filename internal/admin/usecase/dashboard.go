package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shipping-admin/internal/admin/domain/model"
	"shipping-admin/internal/shared/eventbus"
	"shipping-admin/internal/shared/logger"
)

// DashboardStats is the aggregated view rendered on the landing page.
type DashboardStats struct {
	TotalUsers         int            `json:"totalUsers"`
	TotalProducts      int            `json:"totalProducts"`
	TotalOrders        int            `json:"totalOrders"`
	TotalCategories    int            `json:"totalCategories"`
	TotalSuppliers     int            `json:"totalSuppliers"`
	TotalRevenue       float64        `json:"totalRevenue"`
	UsersByStatus      map[string]int `json:"usersByStatus"`
	ProductsByCategory map[string]int `json:"productsByCategory"`
	OrdersByStatus     map[string]int `json:"ordersByStatus"`
	GeneratedAt        time.Time      `json:"generatedAt"`
}

// ActivityItem is one row of the recent-activity feed.
type ActivityItem struct {
	Message  string           `json:"message"`
	Type     model.ChangeType `json:"type"`
	Severity string           `json:"severity"`
	When     string           `json:"when"`
	At       time.Time        `json:"at"`
}

// Dashboard aggregates counts and groupings across all collections. Stats are
// cached and invalidated through the signal bus, so any mutation anywhere in
// the data layer refreshes the next read without the repositories knowing the
// dashboard exists.
type Dashboard struct {
	users      *Repository[*model.User]
	products   *Repository[*model.Product]
	orders     *Repository[*model.Order]
	categories *Repository[*model.Category]
	suppliers  *Repository[*model.Supplier]
	changes    *ChangeLog
	log        logger.Logger
	now        func() time.Time

	mu     sync.Mutex
	cached *DashboardStats
}

// NewDashboard creates the aggregator and subscribes it to data-change events
// for cache invalidation.
func NewDashboard(
	users *Repository[*model.User],
	products *Repository[*model.Product],
	orders *Repository[*model.Order],
	categories *Repository[*model.Category],
	suppliers *Repository[*model.Supplier],
	changes *ChangeLog,
	bus eventbus.EventBusInterface,
	log logger.Logger,
) *Dashboard {
	d := &Dashboard{
		users:      users,
		products:   products,
		orders:     orders,
		categories: categories,
		suppliers:  suppliers,
		changes:    changes,
		log:        log.WithComponent("dashboard"),
		now:        time.Now,
	}

	bus.Subscribe(eventbus.EventTypeDataChanged, func(ctx context.Context, event eventbus.Event) error {
		d.Invalidate()
		return nil
	})
	bus.Subscribe(eventbus.EventTypeSettingsUpdated, func(ctx context.Context, event eventbus.Event) error {
		d.Invalidate()
		return nil
	})

	return d
}

// Invalidate drops the cached stats so the next Stats call recomputes.
func (d *Dashboard) Invalidate() {
	d.mu.Lock()
	d.cached = nil
	d.mu.Unlock()
	d.log.Debug("Dashboard stats cache invalidated")
}

// Stats returns the aggregated dashboard view, recomputing only after a
// mutation invalidated the cache.
func (d *Dashboard) Stats(ctx context.Context) *DashboardStats {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cached != nil {
		return d.cached
	}

	stats := &DashboardStats{
		UsersByStatus:      map[string]int{},
		ProductsByCategory: map[string]int{},
		OrdersByStatus:     map[string]int{},
		GeneratedAt:        d.now(),
	}

	users := d.users.List(ctx)
	stats.TotalUsers = len(users)
	for _, u := range users {
		stats.UsersByStatus[labelOrUnknown(u.Status)]++
	}

	products := d.products.List(ctx)
	stats.TotalProducts = len(products)
	for _, p := range products {
		stats.ProductsByCategory[labelOrUnknown(p.Category)]++
	}

	orders := d.orders.List(ctx)
	stats.TotalOrders = len(orders)
	for _, o := range orders {
		stats.OrdersByStatus[labelOrUnknown(o.Status)]++
		stats.TotalRevenue += o.Total
	}

	stats.TotalCategories = len(d.categories.List(ctx))
	stats.TotalSuppliers = len(d.suppliers.List(ctx))

	d.cached = stats
	d.log.Debugf("Dashboard stats recomputed: %d users, %d products, %d orders",
		stats.TotalUsers, stats.TotalProducts, stats.TotalOrders)
	return stats
}

// RecentActivity renders the last k change entries as feed rows, most recent
// first. Deletions render with error severity, everything else as success.
func (d *Dashboard) RecentActivity(ctx context.Context, k int) []ActivityItem {
	entries := d.changes.Recent(ctx, k)
	now := d.now()

	items := make([]ActivityItem, 0, len(entries))
	for _, entry := range entries {
		severity := "success"
		if entry.Type == model.ChangeTypeDelete {
			severity = "error"
		}
		message := fmt.Sprintf("%s %s", titled(entry.Entity), entry.Action)
		if entry.Details != "" {
			message = fmt.Sprintf("%s %s: %s", titled(entry.Entity), entry.Action, entry.Details)
		}
		items = append(items, ActivityItem{
			Message:  message,
			Type:     entry.Type,
			Severity: severity,
			When:     relativeLabel(now, entry.Timestamp),
			At:       entry.Timestamp,
		})
	}
	return items
}

func labelOrUnknown(label string) string {
	if label == "" {
		return "unknown"
	}
	return label
}

// relativeLabel renders the coarse age labels used by the activity feed.
func relativeLabel(now, at time.Time) string {
	age := now.Sub(at)
	switch {
	case age < time.Minute:
		return "Just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}
