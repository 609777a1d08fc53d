package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"shipping-admin/internal/admin/domain/repository"
	apperrors "shipping-admin/internal/shared/errors"
)

// MemoryStore keeps documents in process memory. It backs tests and
// ephemeral runs; semantics match the durable backends minus durability.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[string]json.RawMessage
	seeds map[string]json.RawMessage
}

var _ repository.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:  make(map[string]json.RawMessage),
		seeds: make(map[string]json.RawMessage),
	}
}

// Seed installs a read-only fallback document, mirroring a bundled seed file.
func (s *MemoryStore) Seed(name string, doc json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seeds[name] = append(json.RawMessage(nil), doc...)
}

// Load resolves cache, then seed, then the empty default.
func (s *MemoryStore) Load(ctx context.Context, name string) (json.RawMessage, error) {
	if err := ValidateCollectionName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if doc, ok := s.docs[name]; ok {
		return append(json.RawMessage(nil), doc...), nil
	}
	if seed, ok := s.seeds[name]; ok {
		return append(json.RawMessage(nil), seed...), nil
	}
	return DefaultDocument(name), nil
}

// Save stores the encoded document under name.
func (s *MemoryStore) Save(ctx context.Context, name string, doc interface{}) error {
	if err := ValidateCollectionName(name); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to encode document %q", name)).WithCause(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[name] = data
	return nil
}
