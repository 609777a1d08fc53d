package repository

import (
	"context"
	"encoding/json"
)

// Store is the durable JSON-document gateway keyed by collection name.
//
// Load resolution order: durable cache, then bundled seed document, then the
// empty default ([] for list collections, {} for settings). Load never fails
// past that point; read errors degrade to the default and are surfaced as
// non-fatal notices by the caller.
//
// Save writes only to the local durable cache. There is no remote write path,
// so two processes sharing a cache race last-write-wins with no merge.
type Store interface {
	Load(ctx context.Context, name string) (json.RawMessage, error)
	Save(ctx context.Context, name string, doc interface{}) error
}
