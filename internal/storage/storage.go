// Package storage provides the pluggable persistence backends for the
// recipe collection. Every backend persists the collection as one unit:
// reads return the whole sequence and writes replace it. Operational
// failures never escape a backend; a failed read degrades to an empty
// collection and a failed write to a false result, logged at the
// boundary where they occur.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/recipevault/recipevault/internal/config"
	"github.com/recipevault/recipevault/internal/types"
)

// Store is the contract every storage backend satisfies.
type Store interface {
	// List returns the full recipe collection. It never returns nil:
	// an absent, empty, or unreadable store yields an empty slice.
	List(ctx context.Context) []types.Recipe

	// Persist replaces the stored collection with the given sequence,
	// reporting success. No partial writes: either the whole sequence
	// lands or the prior contents survive.
	Persist(ctx context.Context, recipes []types.Recipe) bool

	// Name returns the storage backend identifier.
	Name() string

	// Close releases any resources held by the backend.
	Close() error
}

// Unimplemented is an embeddable Store base. Invoking it directly is a
// wiring bug, not a runtime condition, so unlike every operational
// failure it surfaces loudly: List and Persist panic with
// types.ErrUnimplemented.
type Unimplemented struct{}

func (Unimplemented) List(context.Context) []types.Recipe {
	panic(types.ErrUnimplemented)
}

func (Unimplemented) Persist(context.Context, []types.Recipe) bool {
	panic(types.ErrUnimplemented)
}

func (Unimplemented) Name() string { return "unimplemented" }

func (Unimplemented) Close() error { return nil }

// New creates the storage backend selected by the configuration.
func New(cfg config.StorageConfig, logger *slog.Logger) (Store, error) {
	switch backend := cfg.Backend(); backend {
	case "file":
		return NewFileStore(cfg.Path, logger)
	case "mongodb":
		return NewMongoStore(cfg.Mongo, logger), nil
	case "sqlite":
		return NewSQLiteStore(cfg.Path, logger)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", backend)
	}
}
