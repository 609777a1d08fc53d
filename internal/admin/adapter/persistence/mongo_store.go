package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"shipping-admin/internal/admin/domain/repository"
	apperrors "shipping-admin/internal/shared/errors"
	"shipping-admin/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoDocument is the persisted shape: one row per logical collection, with
// the dashboard document kept as raw JSON so load round-trips byte-exact.
type mongoDocument struct {
	Name string `bson:"_id"`
	Doc  string `bson:"doc"`
}

// MongoStore implements the durable cache on MongoDB. Every dashboard
// collection is a single document in one Mongo collection, preserving the
// gateway's whole-document write semantics (no partial updates, last write
// wins).
type MongoStore struct {
	coll  *mongo.Collection
	seeds *SeedSource
	log   logger.Logger
}

var _ repository.Store = (*MongoStore)(nil)

// NewMongoStore creates a Mongo-backed store on the given collection.
func NewMongoStore(coll *mongo.Collection, seeds *SeedSource, log logger.Logger) *MongoStore {
	return &MongoStore{
		coll:  coll,
		seeds: seeds,
		log:   log.WithComponent("mongo-store"),
	}
}

// Load resolves the cached row, then the seed document, then the empty
// default. Mongo read failures degrade to the seed path with a warning.
func (s *MongoStore) Load(ctx context.Context, name string) (json.RawMessage, error) {
	if err := ValidateCollectionName(name); err != nil {
		return nil, err
	}

	var row mongoDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&row)
	if err == nil {
		if json.Valid([]byte(row.Doc)) {
			return json.RawMessage(row.Doc), nil
		}
		s.log.Warnf("Cached document %s is corrupt, falling back to seed", name)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		s.log.Warnf("Failed to read cached document %s from MongoDB: %v", name, err)
	}

	if seed, ok := s.seeds.Read(name); ok {
		return seed, nil
	}
	return DefaultDocument(name), nil
}

// Save upserts the whole document row for name.
func (s *MongoStore) Save(ctx context.Context, name string, doc interface{}) error {
	if err := ValidateCollectionName(name); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to encode document %q", name)).WithCause(err)
	}

	row := mongoDocument{Name: name, Doc: string(data)}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": name}, row, opts); err != nil {
		s.log.Errorf("Failed to store document %s in MongoDB: %v", name, err)
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to store document %q", name)).WithCause(err)
	}

	s.log.Debugf("Document %s stored in MongoDB (%d bytes)", name, len(data))
	return nil
}
