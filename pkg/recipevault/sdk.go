// Package recipevault provides a public SDK for embedding RecipeVault
// as a library.
//
// Example usage:
//
//	vault, err := recipevault.New(
//	    recipevault.WithFile("./data/recipes.json"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer vault.Close()
//
//	ok := vault.Add(ctx, map[string]any{
//	    "name":         "Pasta",
//	    "ingredients":  []string{"noodles", "sauce"},
//	    "instructions": "Boil and mix.",
//	})
package recipevault

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/recipevault/recipevault/internal/config"
	"github.com/recipevault/recipevault/internal/recipe"
	"github.com/recipevault/recipevault/internal/storage"
	"github.com/recipevault/recipevault/internal/types"
)

// Recipe is the stored recipe record.
type Recipe = types.Recipe

// Vault is the high-level API for using RecipeVault as a library.
type Vault struct {
	cfg    *config.Config
	store  storage.Store
	svc    *recipe.Service
	logger *slog.Logger
}

// Option configures a Vault.
type Option func(*config.Config, *Vault)

// WithFile selects the flat-file backend at the given path.
func WithFile(path string) Option {
	return func(cfg *config.Config, _ *Vault) {
		cfg.Storage.Type = "file"
		cfg.Storage.Path = path
	}
}

// WithSQLite selects the SQLite backend at the given path.
func WithSQLite(path string) Option {
	return func(cfg *config.Config, _ *Vault) {
		cfg.Storage.Type = "sqlite"
		cfg.Storage.Path = path
	}
}

// WithMongo selects the MongoDB backend.
func WithMongo(uri, database, collection string) Option {
	return func(cfg *config.Config, _ *Vault) {
		cfg.Storage.Type = "mongodb"
		cfg.Storage.Mongo.URI = uri
		cfg.Storage.Mongo.Database = database
		cfg.Storage.Mongo.Collection = collection
	}
}

// WithLogger sets the logger. Defaults to a text handler on stderr at
// warn level.
func WithLogger(logger *slog.Logger) Option {
	return func(_ *config.Config, v *Vault) {
		v.logger = logger
	}
}

// New creates a Vault with the given options. Without a backend option
// the default file backend is used.
func New(opts ...Option) (*Vault, error) {
	cfg := config.DefaultConfig()
	v := &Vault{cfg: cfg}

	for _, opt := range opts {
		opt(cfg, v)
	}

	if v.logger == nil {
		v.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	store, err := storage.New(cfg.Storage, v.logger)
	if err != nil {
		return nil, fmt.Errorf("create storage: %w", err)
	}

	v.store = store
	v.svc = recipe.NewService(store, v.logger)
	return v, nil
}

// List returns all stored recipes. The result is always non-nil.
func (v *Vault) List(ctx context.Context) []Recipe {
	return v.svc.List(ctx)
}

// Add validates and stores a new recipe, reporting success.
func (v *Vault) Add(ctx context.Context, candidate map[string]any) bool {
	return v.svc.Add(ctx, candidate)
}

// Update merges a partial update into the recipe with the given name,
// reporting success.
func (v *Vault) Update(ctx context.Context, name string, partial map[string]any) bool {
	return v.svc.Update(ctx, name, partial)
}

// Delete removes the recipe with the given name, reporting success.
func (v *Vault) Delete(ctx context.Context, name string) bool {
	return v.svc.Delete(ctx, name)
}

// Close releases backend resources.
func (v *Vault) Close() error {
	return v.store.Close()
}
