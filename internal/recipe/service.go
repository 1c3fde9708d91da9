// Package recipe implements the CRUD operations over the recipe
// collection. All operational failures (duplicate name, missing record,
// invalid input, storage trouble) surface as a false result; callers
// branch on the boolean rather than catching errors.
package recipe

import (
	"context"
	"log/slog"

	"github.com/recipevault/recipevault/internal/schema"
	"github.com/recipevault/recipevault/internal/storage"
	"github.com/recipevault/recipevault/internal/types"
)

// Service orchestrates validation and persistence over one injected
// storage backend, selected once at startup.
//
// Operations are not mutually exclusive: concurrent writes racing on
// the same backend are last-write-wins, an accepted limitation at this
// module's scale.
type Service struct {
	store  storage.Store
	logger *slog.Logger

	// lastID seeds from the highest persisted id so ids are never
	// reused within a process lifetime, even across deletes.
	lastID int64
}

// NewService creates a recipe service on the given backend.
func NewService(store storage.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With("component", "recipe_service"),
	}
}

// List returns the full collection. The result is always non-nil.
func (s *Service) List(ctx context.Context) []types.Recipe {
	recipes := s.store.List(ctx)
	if recipes == nil {
		recipes = []types.Recipe{}
	}
	return recipes
}

// Add validates the candidate, assigns it the next id, and appends it
// to the collection. It returns false on a duplicate name, a missing
// required field, or a storage failure.
func (s *Service) Add(ctx context.Context, candidate map[string]any) bool {
	recipes := s.List(ctx)

	name, _ := candidate["name"].(string)
	for _, existing := range recipes {
		if types.NameMatches(existing.Name, name) {
			s.logger.Info("add rejected", "name", name, "reason", types.ErrDuplicateName)
			return false
		}
	}

	r, ok := schema.ValidateCreate(candidate)
	if !ok {
		s.logger.Info("add rejected", "name", name, "reason", types.ErrInvalidRecipe)
		return false
	}

	r.ID = s.nextID(recipes)
	recipes = append(recipes, r)

	if !s.store.Persist(ctx, recipes) {
		return false
	}
	s.logger.Info("recipe added", "name", r.Name, "id", r.ID)
	return true
}

// Update merges a validated partial update into the recipe with the
// given name. Missing fields keep their prior values; the record's id
// and name are preserved. Returns false if no recipe matches the name
// or the write fails.
func (s *Service) Update(ctx context.Context, name string, partial map[string]any) bool {
	recipes := s.List(ctx)

	idx := -1
	for i, r := range recipes {
		if types.NameMatches(r.Name, name) {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.logger.Info("update rejected", "name", name, "reason", types.ErrNotFound)
		return false
	}

	fields := schema.ValidateUpdate(partial)
	schema.Apply(&recipes[idx], fields)
	recipes[idx].Canonicalize()

	if !s.store.Persist(ctx, recipes) {
		return false
	}
	s.logger.Info("recipe updated", "name", recipes[idx].Name, "fields", len(fields))
	return true
}

// Delete removes the recipe with the given name. Returns false if no
// recipe matches or the write fails.
func (s *Service) Delete(ctx context.Context, name string) bool {
	recipes := s.List(ctx)

	remaining := make([]types.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if !types.NameMatches(r.Name, name) {
			remaining = append(remaining, r)
		}
	}
	if len(remaining) == len(recipes) {
		s.logger.Info("delete rejected", "name", name, "reason", types.ErrNotFound)
		return false
	}

	if !s.store.Persist(ctx, remaining) {
		return false
	}
	s.logger.Info("recipe deleted", "name", name)
	return true
}

// nextID returns a fresh id: one past the larger of the highest
// persisted id and the highest id handed out by this process.
func (s *Service) nextID(recipes []types.Recipe) int64 {
	for _, r := range recipes {
		if r.ID > s.lastID {
			s.lastID = r.ID
		}
	}
	s.lastID++
	return s.lastID
}
