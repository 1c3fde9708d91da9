package storage

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/recipevault/recipevault/internal/config"
	"github.com/recipevault/recipevault/internal/types"
)

// MongoStore persists the recipe collection in a MongoDB collection.
// Each operation opens its own connection and disconnects before
// returning, on every exit path. Persist replaces the whole collection:
// delete everything, insert the given sequence.
type MongoStore struct {
	Unimplemented

	cfg    config.MongoConfig
	logger *slog.Logger
}

// NewMongoStore creates a new MongoDB storage backend. No connection is
// made here; each operation connects on demand.
func NewMongoStore(cfg config.MongoConfig, logger *slog.Logger) *MongoStore {
	return &MongoStore{
		cfg:    cfg,
		logger: logger.With("component", "mongo_store"),
	}
}

func (s *MongoStore) Name() string { return "mongodb" }

// connect opens a client and returns it with a disconnect func the
// caller must defer.
func (s *MongoStore) connect(ctx context.Context) (*mongo.Client, func(), error) {
	connectCtx, cancel := context.WithTimeout(ctx, s.cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(s.cfg.URI))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	disconnect := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			s.logger.Warn("disconnect failed", "error", err)
		}
	}
	return client, disconnect, nil
}

func (s *MongoStore) collection(client *mongo.Client) *mongo.Collection {
	return client.Database(s.cfg.Database).Collection(s.cfg.Collection)
}

func (s *MongoStore) List(ctx context.Context) []types.Recipe {
	client, disconnect, err := s.connect(ctx)
	if err != nil {
		s.logger.Warn("list failed, treating store as empty", "error", &types.StorageError{Backend: s.Name(), Op: "list", Err: err})
		return []types.Recipe{}
	}
	defer disconnect()

	cursor, err := s.collection(client).Find(ctx, bson.D{})
	if err != nil {
		s.logger.Warn("list failed, treating store as empty", "error", &types.StorageError{Backend: s.Name(), Op: "list", Err: err})
		return []types.Recipe{}
	}

	var recipes []types.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		s.logger.Warn("list failed, treating store as empty", "error", &types.StorageError{Backend: s.Name(), Op: "list", Err: err})
		return []types.Recipe{}
	}

	return types.CanonicalizeAll(recipes)
}

func (s *MongoStore) Persist(ctx context.Context, recipes []types.Recipe) bool {
	client, disconnect, err := s.connect(ctx)
	if err != nil {
		s.logger.Error("persist failed", "error", &types.StorageError{Backend: s.Name(), Op: "persist", Err: err})
		return false
	}
	defer disconnect()

	coll := s.collection(client)
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		s.logger.Error("persist failed", "error", &types.StorageError{Backend: s.Name(), Op: "persist", Err: err})
		return false
	}

	if len(recipes) == 0 {
		return true
	}

	docs := make([]any, len(recipes))
	for i, r := range recipes {
		r.Canonicalize()
		docs[i] = r
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		s.logger.Error("persist failed", "error", &types.StorageError{Backend: s.Name(), Op: "persist", Err: err})
		return false
	}

	s.logger.Debug("collection written", "recipes", len(recipes))
	return true
}

func (s *MongoStore) Close() error { return nil }
