package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"shipping-admin/internal/admin/domain/repository"
	apperrors "shipping-admin/internal/shared/errors"
	"shipping-admin/internal/shared/logger"
)

// FileStore is the default durable cache: one JSON file per collection under
// cacheDir, with read-through fallback to the bundled seed documents. It is
// the localStorage analog of the original dashboard; writes are local only
// and two processes sharing a cache dir race last-write-wins.
type FileStore struct {
	cacheDir string
	seeds    *SeedSource
	log      logger.Logger
	mu       sync.Mutex
}

var _ repository.Store = (*FileStore)(nil)

// NewFileStore creates a file-backed store. The cache directory is created
// lazily on first save.
func NewFileStore(cacheDir string, seeds *SeedSource, log logger.Logger) *FileStore {
	return &FileStore{
		cacheDir: cacheDir,
		seeds:    seeds,
		log:      log.WithComponent("file-store"),
	}
}

// Load resolves the document for name: cache file, then seed, then the empty
// default. Unreadable or corrupt cache entries degrade to the next fallback
// instead of failing the caller.
func (s *FileStore) Load(ctx context.Context, name string) (json.RawMessage, error) {
	if err := ValidateCollectionName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	data, err := os.ReadFile(s.cachePath(name))
	s.mu.Unlock()
	if err == nil {
		if json.Valid(data) {
			return json.RawMessage(data), nil
		}
		s.log.Warnf("Cached document %s is corrupt, falling back to seed", name)
	} else if !os.IsNotExist(err) {
		s.log.Warnf("Failed to read cached document %s: %v", name, err)
	}

	if seed, ok := s.seeds.Read(name); ok {
		return seed, nil
	}

	return DefaultDocument(name), nil
}

// Save durably writes the document under name. The write goes through a
// temporary file and rename so a crash never leaves a partial document.
func (s *FileStore) Save(ctx context.Context, name string, doc interface{}) error {
	if err := ValidateCollectionName(name); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to encode document %q", name)).WithCause(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to create cache dir for %q", name)).WithCause(err)
	}

	tmp, err := os.CreateTemp(s.cacheDir, name+".*.tmp")
	if err != nil {
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to stage document %q", name)).WithCause(err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to write document %q", name)).WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to flush document %q", name)).WithCause(err)
	}

	if err := os.Rename(tmpName, s.cachePath(name)); err != nil {
		os.Remove(tmpName)
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to commit document %q", name)).WithCause(err)
	}

	s.log.Debugf("Saved document %s (%d bytes)", name, len(data))
	return nil
}

func (s *FileStore) cachePath(name string) string {
	return filepath.Join(s.cacheDir, name+".json")
}
