package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"shipping-admin/internal/admin/domain/model"
	"shipping-admin/internal/admin/domain/repository"
	apperrors "shipping-admin/internal/shared/errors"
	"shipping-admin/internal/shared/logger"
)

// Schema parameterizes the generic repository per entity type, replacing the
// five copy-pasted managers of the original dashboard with one implementation.
type Schema[T model.Entity] struct {
	// Collection is the storage gateway document name.
	Collection string
	// Singular is the display label used in notices and change entries.
	Singular string
	// Validate applies the entity's presence/numeric rules before create.
	Validate func(entity T) *apperrors.ValidationErrors
	// Describe renders a short display name for notices and change details.
	Describe func(entity T) string
	// OnCreate derives fields before the new entity is appended (order
	// numbers, totals). It sees the current collection for positional
	// derivations and may reject the entity with a validation error.
	OnCreate func(ctx context.Context, entity T, existing []T) error
	// OnUpdate re-derives fields after a merge (total recomputation when
	// product or quantity changed). fields holds the caller's patch.
	OnUpdate func(ctx context.Context, entity T, fields map[string]interface{}) error
}

// Repository owns one entity collection: an in-memory mirror synchronized
// with the storage gateway, id assignment, validation, the confirmation gate
// on delete, and change recording. Mutations are serialized by a mutex; the
// durable cache itself stays last-write-wins across processes.
type Repository[T model.Entity] struct {
	schema   Schema[T]
	store    repository.Store
	changes  *ChangeLog
	notifier repository.Notifier
	gate     repository.ConfirmationGate
	log      logger.Logger
	today    func() string

	mu     sync.Mutex
	items  []T
	nextID int
	loaded bool
}

// NewRepository creates a repository for one entity collection.
func NewRepository[T model.Entity](
	schema Schema[T],
	store repository.Store,
	changes *ChangeLog,
	notifier repository.Notifier,
	gate repository.ConfirmationGate,
	log logger.Logger,
) *Repository[T] {
	return &Repository[T]{
		schema:   schema,
		store:    store,
		changes:  changes,
		notifier: notifier,
		gate:     gate,
		log:      log.WithComponent(schema.Collection + "-repository"),
		today:    model.Today,
	}
}

// Collection returns the storage gateway document name.
func (r *Repository[T]) Collection() string {
	return r.schema.Collection
}

// ensureLoaded populates the in-memory mirror from the gateway on first use.
// A corrupt document degrades to an empty collection with a notice, matching
// the gateway's never-fatal read contract.
func (r *Repository[T]) ensureLoaded(ctx context.Context) {
	if r.loaded {
		return
	}

	raw, err := r.store.Load(ctx, r.schema.Collection)
	if err != nil {
		r.log.Warnf("Failed to load %s, starting empty: %v", r.schema.Collection, err)
		r.notifier.Notify(ctx, fmt.Sprintf("Error loading %s", r.schema.Collection), repository.SeverityError)
		raw = json.RawMessage("[]")
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		r.log.Warnf("Stored %s document does not decode, starting empty: %v", r.schema.Collection, err)
		r.notifier.Notify(ctx, fmt.Sprintf("Error loading %s", r.schema.Collection), repository.SeverityError)
		items = nil
	}

	r.items = items
	r.nextID = maxEntityID(items) + 1
	r.loaded = true
}

// List returns the collection in insertion order.
func (r *Repository[T]) List(ctx context.Context) []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLoaded(ctx)

	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

// Find returns the entity with the given id, or a not-found error.
func (r *Repository[T]) Find(ctx context.Context, id int) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLoaded(ctx)

	for _, item := range r.items {
		if item.EntityID() == id {
			return item, nil
		}
	}
	var zero T
	return zero, apperrors.NewNotFoundError(r.schema.Singular).WithDetail("id", id)
}

// Create validates the candidate, assigns the next id, stamps createdAt,
// appends, persists the full collection and records a create change. On
// validation failure nothing is mutated. Ids grow monotonically and are
// never handed out again after a delete.
func (r *Repository[T]) Create(ctx context.Context, entity T) (T, error) {
	var zero T

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLoaded(ctx)

	if r.schema.Validate != nil {
		if ve := r.schema.Validate(entity); ve != nil {
			r.notifier.Notify(ctx, "Please fill in all required fields correctly", repository.SeverityWarning)
			return zero, ve.ToAppError()
		}
	}

	if r.schema.OnCreate != nil {
		if err := r.schema.OnCreate(ctx, entity, r.items); err != nil {
			r.notifier.Notify(ctx, err.Error(), repository.SeverityWarning)
			return zero, err
		}
	}

	entity.SetEntityID(r.nextID)
	entity.StampCreated(r.today())

	r.items = append(r.items, entity)
	r.nextID++

	if err := r.persist(ctx); err != nil {
		return zero, err
	}

	r.changes.Record(ctx, r.schema.Singular, "created", r.describe(entity))
	r.notifier.Notify(ctx, fmt.Sprintf("%s added successfully", titled(r.schema.Singular)), repository.SeveritySuccess)
	r.log.WithContext(ctx).Infof("Created %s id=%d", r.schema.Singular, entity.EntityID())
	return entity, nil
}

// Update shallow-merges fields into the stored entity: unspecified fields
// retain their prior values, id and stamps cannot be overridden by the
// caller. Stamps updatedAt, persists and records an update change.
func (r *Repository[T]) Update(ctx context.Context, id int, fields map[string]interface{}) (T, error) {
	var zero T

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLoaded(ctx)

	idx := -1
	for i, item := range r.items {
		if item.EntityID() == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return zero, apperrors.NewNotFoundError(r.schema.Singular).WithDetail("id", id)
	}

	merged, err := mergeEntity(r.items[idx], fields)
	if err != nil {
		r.notifier.Notify(ctx, "Please fill in all required fields correctly", repository.SeverityWarning)
		return zero, err
	}

	if r.schema.OnUpdate != nil {
		if err := r.schema.OnUpdate(ctx, merged, fields); err != nil {
			r.notifier.Notify(ctx, err.Error(), repository.SeverityWarning)
			return zero, err
		}
	}

	merged.StampUpdated(r.today())
	r.items[idx] = merged

	if err := r.persist(ctx); err != nil {
		return zero, err
	}

	r.changes.Record(ctx, r.schema.Singular, "updated", r.describe(merged))
	r.notifier.Notify(ctx, fmt.Sprintf("%s updated successfully", titled(r.schema.Singular)), repository.SeveritySuccess)
	r.log.WithContext(ctx).Infof("Updated %s id=%d", r.schema.Singular, id)
	return merged, nil
}

// Delete consults the confirmation gate before touching anything. A declined
// confirmation aborts cleanly with no mutation; on confirmation the entity is
// removed, the collection persisted and a delete change recorded.
func (r *Repository[T]) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLoaded(ctx)

	idx := -1
	for i, item := range r.items {
		if item.EntityID() == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apperrors.NewNotFoundError(r.schema.Singular).WithDetail("id", id)
	}

	message := fmt.Sprintf("Are you sure you want to delete this %s?", r.schema.Singular)
	if !r.gate.Confirm(ctx, message) {
		r.log.WithContext(ctx).Debugf("Delete of %s id=%d declined", r.schema.Singular, id)
		return apperrors.ErrConfirmationDeclined
	}

	name := r.describe(r.items[idx])
	r.items = append(r.items[:idx], r.items[idx+1:]...)

	if err := r.persist(ctx); err != nil {
		return err
	}

	r.changes.Record(ctx, r.schema.Singular, "deleted", name)
	r.notifier.Notify(ctx, fmt.Sprintf("%s %q deleted successfully", titled(r.schema.Singular), name), repository.SeveritySuccess)
	r.log.WithContext(ctx).Infof("Deleted %s id=%d", r.schema.Singular, id)
	return nil
}

// persist writes the full collection through the gateway. A failed write is a
// non-fatal notice: the in-memory mirror may diverge from durable state until
// the next successful save, which is the accepted recovery model.
func (r *Repository[T]) persist(ctx context.Context) error {
	items := r.items
	if items == nil {
		items = []T{}
	}
	if err := r.store.Save(ctx, r.schema.Collection, items); err != nil {
		r.log.Errorf("Failed to save %s: %v", r.schema.Collection, err)
		r.notifier.Notify(ctx, fmt.Sprintf("Error saving %s", r.schema.Collection), repository.SeverityError)
		return err
	}
	return nil
}

func (r *Repository[T]) describe(entity T) string {
	if r.schema.Describe != nil {
		return r.schema.Describe(entity)
	}
	return fmt.Sprintf("%s #%d", r.schema.Singular, entity.EntityID())
}

// mergeEntity applies a shallow field merge through a JSON round trip so the
// patch semantics match the original dashboard's object spread: caller keys
// replace stored keys, everything else survives untouched.
func mergeEntity[T model.Entity](current T, fields map[string]interface{}) (T, error) {
	var zero T

	base, err := json.Marshal(current)
	if err != nil {
		return zero, apperrors.NewInternalError("failed to encode entity for merge").WithCause(err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(base, &doc); err != nil {
		return zero, apperrors.NewInternalError("failed to decode entity for merge").WithCause(err)
	}

	for key, value := range fields {
		switch key {
		case "id", "createdAt", "updatedAt":
			// Repository-owned fields are never caller-writable.
			continue
		}
		doc[key] = value
	}

	mergedRaw, err := json.Marshal(doc)
	if err != nil {
		return zero, apperrors.NewInternalError("failed to encode merged entity").WithCause(err)
	}

	merged := newEntity[T]()
	if err := json.Unmarshal(mergedRaw, merged); err != nil {
		return zero, apperrors.NewValidationError("invalid field value").WithCause(err)
	}
	return *merged, nil
}

// newEntity allocates the concrete struct behind the pointer type T.
func newEntity[T model.Entity]() *T {
	var entity T
	return &entity
}

func maxEntityID[T model.Entity](items []T) int {
	max := 0
	for _, item := range items {
		if item.EntityID() > max {
			max = item.EntityID()
		}
	}
	return max
}

func titled(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
