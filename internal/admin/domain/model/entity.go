package model

import "time"

// DateLayout is the day-granularity stamp used for createdAt/updatedAt and
// order dates. The data layer owns these stamps; callers never set them.
const DateLayout = "2006-01-02"

// Today returns the current day stamp.
func Today() string {
	return time.Now().Format(DateLayout)
}

// Entity is implemented by every record stored in a collection. Ids are
// integers unique within one collection, assigned by the repository and never
// reused after deletion.
type Entity interface {
	EntityID() int
	SetEntityID(id int)
	StampCreated(date string)
	StampUpdated(date string)
}

// Meta carries the fields common to all entity records.
type Meta struct {
	ID        int    `json:"id"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func (m *Meta) EntityID() int            { return m.ID }
func (m *Meta) SetEntityID(id int)       { m.ID = id }
func (m *Meta) StampCreated(date string) { m.CreatedAt = date }
func (m *Meta) StampUpdated(date string) { m.UpdatedAt = date }

// Collection names persisted through the storage gateway.
const (
	CollectionUsers      = "users"
	CollectionProducts   = "products"
	CollectionOrders     = "orders"
	CollectionCategories = "categories"
	CollectionSuppliers  = "suppliers"
	CollectionSettings   = "settings"
	CollectionChanges    = "changes"
)

// ListCollections enumerates the list-typed collections in dashboard order.
func ListCollections() []string {
	return []string{
		CollectionUsers,
		CollectionProducts,
		CollectionOrders,
		CollectionCategories,
		CollectionSuppliers,
	}
}

// IsListCollection reports whether name resolves to a JSON array document.
// The settings document is the only object-typed collection.
func IsListCollection(name string) bool {
	return name != CollectionSettings
}
