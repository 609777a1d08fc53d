package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	"shipping-admin/internal/admin/domain/model"
	apperrors "shipping-admin/internal/shared/errors"
	"shipping-admin/internal/shared/logger"
)

// Collection names double as cache keys and seed file names, so they are
// restricted to a safe character set before touching the filesystem.
var collectionNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateCollectionName rejects names unusable as cache keys or file names.
func ValidateCollectionName(name string) error {
	if !collectionNameRegex.MatchString(name) {
		return apperrors.ErrInvalidCollection
	}
	return nil
}

// DefaultDocument returns the empty fallback for a collection: an empty list
// for list-typed collections and an empty object for settings.
func DefaultDocument(name string) json.RawMessage {
	if model.IsListCollection(name) {
		return json.RawMessage("[]")
	}
	return json.RawMessage("{}")
}

// SeedSource reads the bundled read-only seed documents, consulted only when
// the durable cache has no entry for a collection.
type SeedSource struct {
	dir string
	log logger.Logger
}

// NewSeedSource creates a seed source rooted at dir.
func NewSeedSource(dir string, log logger.Logger) *SeedSource {
	return &SeedSource{dir: dir, log: log.WithComponent("seed-source")}
}

// Read returns the seed document for name, or false when no usable seed
// exists. A malformed seed degrades to absent rather than failing the load.
func (s *SeedSource) Read(name string) (json.RawMessage, bool) {
	path := filepath.Join(s.dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warnf("Failed to read seed document %s: %v", path, err)
		}
		return nil, false
	}
	if !json.Valid(data) {
		s.log.Warnf("Seed document %s is not valid JSON, ignoring", path)
		return nil, false
	}
	return json.RawMessage(data), true
}
