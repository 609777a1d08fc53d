package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"shipping-admin/internal/admin/domain/model"
	"shipping-admin/internal/admin/domain/repository"
	"shipping-admin/internal/shared/eventbus"
	"shipping-admin/internal/shared/logger"

	"github.com/google/uuid"
)

// DefaultChangeLogMax bounds the retained mutation history. The original
// dashboard carried both a 20- and a 10-entry cap in shadowing definitions;
// 20 is the bound chosen here and the cap stays configurable.
const DefaultChangeLogMax = 20

// ChangeLog keeps the bounded, time-ordered history of mutations. Every
// record triggers the signal bus, which is how CRUD operations cause the
// dashboard to refresh without direct coupling. Entries persist under the
// changes collection through the same storage gateway as entity data.
type ChangeLog struct {
	store repository.Store
	bus   eventbus.EventBusInterface
	max   int
	log   logger.Logger
	now   func() time.Time

	mu      sync.Mutex
	entries []model.ChangeEntry
	loaded  bool
}

// NewChangeLog creates a change log with the given retention cap. A
// non-positive cap falls back to the default.
func NewChangeLog(store repository.Store, bus eventbus.EventBusInterface, max int, log logger.Logger) *ChangeLog {
	if max <= 0 {
		max = DefaultChangeLogMax
	}
	return &ChangeLog{
		store: store,
		bus:   bus,
		max:   max,
		log:   log.WithComponent("change-log"),
		now:   time.Now,
	}
}

// Max returns the configured retention cap.
func (c *ChangeLog) Max() int {
	return c.max
}

func (c *ChangeLog) ensureLoaded(ctx context.Context) {
	if c.loaded {
		return
	}

	raw, err := c.store.Load(ctx, model.CollectionChanges)
	if err != nil {
		c.log.Warnf("Failed to load change history, starting empty: %v", err)
		raw = json.RawMessage("[]")
	}

	var entries []model.ChangeEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		c.log.Warnf("Stored change history does not decode, starting empty: %v", err)
		entries = nil
	}
	if len(entries) > c.max {
		entries = entries[len(entries)-c.max:]
	}

	c.entries = entries
	c.loaded = true
}

// Record appends a change entry, evicting the oldest once the cap is
// exceeded, persists the history and fires the signal bus. Recording never
// fails the calling mutation: persistence problems degrade to a log line.
func (c *ChangeLog) Record(ctx context.Context, entity, action, details string) {
	c.mu.Lock()
	c.ensureLoaded(ctx)

	entry := model.ChangeEntry{
		ID:        uuid.NewString(),
		Entity:    entity,
		Action:    action,
		Details:   details,
		Type:      model.ClassifyAction(action),
		Timestamp: c.now(),
	}

	c.entries = append(c.entries, entry)
	if len(c.entries) > c.max {
		c.entries = c.entries[len(c.entries)-c.max:]
	}

	snapshot := make([]model.ChangeEntry, len(c.entries))
	copy(snapshot, c.entries)
	c.mu.Unlock()

	if err := c.store.Save(ctx, model.CollectionChanges, snapshot); err != nil {
		c.log.Warnf("Failed to persist change history: %v", err)
	}

	c.bus.PublishAndForget(ctx, eventbus.NewBasicEventWithSource(eventbus.EventTypeDataChanged, entity, "change-log"))
}

// Recent returns the last k entries, most recent first. k larger than the
// retained history returns everything.
func (c *ChangeLog) Recent(ctx context.Context, k int) []model.ChangeEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)

	if k <= 0 || k > len(c.entries) {
		k = len(c.entries)
	}

	out := make([]model.ChangeEntry, 0, k)
	for i := len(c.entries) - 1; i >= len(c.entries)-k; i-- {
		out = append(out, c.entries[i])
	}
	return out
}

// Len returns the number of retained entries.
func (c *ChangeLog) Len(ctx context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)
	return len(c.entries)
}
