package recipe

import (
	"context"
	"log/slog"
	"os"
	"reflect"
	"testing"

	"github.com/recipevault/recipevault/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

// memStore is an in-memory backend for service tests. failPersist
// simulates a storage write failure: the held collection is untouched
// and Persist reports false.
type memStore struct {
	recipes     []types.Recipe
	failPersist bool
}

func (s *memStore) List(ctx context.Context) []types.Recipe {
	out := make([]types.Recipe, len(s.recipes))
	for i, r := range s.recipes {
		out[i] = r.Clone()
	}
	return out
}

func (s *memStore) Persist(ctx context.Context, recipes []types.Recipe) bool {
	if s.failPersist {
		return false
	}
	s.recipes = types.CanonicalizeAll(recipes)
	return true
}

func (s *memStore) Name() string { return "mem" }
func (s *memStore) Close() error { return nil }

func newTestService(store *memStore) *Service {
	return NewService(store, testLogger)
}

func pastaCandidate() map[string]any {
	return map[string]any{
		"name":         "Pasta",
		"ingredients":  []string{"noodles", "sauce"},
		"instructions": "Boil and mix.",
	}
}

func TestListEmptyStore(t *testing.T) {
	svc := newTestService(&memStore{})

	recipes := svc.List(context.Background())
	if recipes == nil {
		t.Fatal("List must never return nil")
	}
	if len(recipes) != 0 {
		t.Errorf("expected empty collection, got %d", len(recipes))
	}
}

func TestAddScenario(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)
	ctx := context.Background()

	if !svc.Add(ctx, pastaCandidate()) {
		t.Fatal("expected add to succeed")
	}

	recipes := svc.List(ctx)
	if len(recipes) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(recipes))
	}
	r := recipes[0]
	if r.ID != 1 {
		t.Errorf("expected id=1, got %d", r.ID)
	}
	if r.Name != "Pasta" {
		t.Errorf("expected name Pasta, got %q", r.Name)
	}
	if r.Category != "" {
		t.Errorf("expected empty category, got %q", r.Category)
	}
	if r.Tags == nil || len(r.Tags) != 0 {
		t.Errorf("expected empty tags, got %v", r.Tags)
	}
	if !reflect.DeepEqual(r.Ingredients, []string{"noodles", "sauce"}) {
		t.Errorf("unexpected ingredients: %v", r.Ingredients)
	}
}

func TestAddDropsUnexpectedFields(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)

	candidate := pastaCandidate()
	candidate["maliciousField"] = "payload"
	if !svc.Add(context.Background(), candidate) {
		t.Fatal("expected add to succeed")
	}

	// The stored record carries exactly the schema field set.
	if len(store.recipes) != 1 {
		t.Fatalf("expected 1 stored recipe, got %d", len(store.recipes))
	}
}

func TestAddDuplicateName(t *testing.T) {
	svc := newTestService(&memStore{})
	ctx := context.Background()

	if !svc.Add(ctx, pastaCandidate()) {
		t.Fatal("first add should succeed")
	}

	dup := pastaCandidate()
	dup["name"] = "  pAsTa  " // same name, ignoring case and whitespace
	if svc.Add(ctx, dup) {
		t.Error("expected duplicate add to fail")
	}
	if got := len(svc.List(ctx)); got != 1 {
		t.Errorf("collection length changed on rejected add: %d", got)
	}
}

func TestAddMissingRequiredField(t *testing.T) {
	svc := newTestService(&memStore{})

	if svc.Add(context.Background(), map[string]any{"name": "X"}) {
		t.Error("expected add without required fields to fail")
	}
}

func TestAddCoercesWrongTypedIngredients(t *testing.T) {
	svc := newTestService(&memStore{})
	ctx := context.Background()

	ok := svc.Add(ctx, map[string]any{
		"name":         "X",
		"ingredients":  "not-an-array",
		"instructions": "Y",
	})
	if !ok {
		t.Fatal("expected create-mode leniency, not failure")
	}

	recipes := svc.List(ctx)
	if len(recipes[0].Ingredients) != 0 {
		t.Errorf("expected coerced empty ingredients, got %v", recipes[0].Ingredients)
	}
}

func TestUpdatePreservesUnspecifiedFields(t *testing.T) {
	svc := newTestService(&memStore{})
	ctx := context.Background()

	svc.Add(ctx, map[string]any{
		"name":         "Cake",
		"ingredients":  []string{"flour", "sugar"},
		"instructions": "Bake at 180C.",
	})

	ok := svc.Update(ctx, "cake", map[string]any{
		"ingredients": []string{"flour", "sugar", "vanilla"},
	})
	if !ok {
		t.Fatal("expected update to succeed")
	}

	r := svc.List(ctx)[0]
	if !reflect.DeepEqual(r.Ingredients, []string{"flour", "sugar", "vanilla"}) {
		t.Errorf("unexpected ingredients: %v", r.Ingredients)
	}
	if r.Instructions != "Bake at 180C." {
		t.Errorf("instructions should be untouched, got %q", r.Instructions)
	}
	if r.Name != "Cake" || r.ID != 1 {
		t.Errorf("update changed identity: %+v", r)
	}
}

func TestUpdateAbsentName(t *testing.T) {
	svc := newTestService(&memStore{})
	ctx := context.Background()
	svc.Add(ctx, pastaCandidate())

	if svc.Update(ctx, "Risotto", map[string]any{"category": "dinner"}) {
		t.Error("expected update on absent name to fail")
	}
	if got := len(svc.List(ctx)); got != 1 {
		t.Errorf("collection changed: %d", got)
	}
}

func TestDeleteByName(t *testing.T) {
	svc := newTestService(&memStore{})
	ctx := context.Background()
	svc.Add(ctx, pastaCandidate())

	if !svc.Delete(ctx, " PASTA ") {
		t.Fatal("expected delete to succeed regardless of case and whitespace")
	}
	if got := len(svc.List(ctx)); got != 0 {
		t.Errorf("expected empty collection, got %d", got)
	}
}

func TestDeleteAbsentName(t *testing.T) {
	svc := newTestService(&memStore{})
	ctx := context.Background()
	svc.Add(ctx, pastaCandidate())

	if svc.Delete(ctx, "Risotto") {
		t.Error("expected delete on absent name to fail")
	}
	if got := len(svc.List(ctx)); got != 1 {
		t.Errorf("collection changed: %d", got)
	}
}

func TestStorageFailureSurfacesAsFalse(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)
	ctx := context.Background()
	svc.Add(ctx, pastaCandidate())

	store.failPersist = true

	if svc.Add(ctx, map[string]any{"name": "Soup", "ingredients": []string{"water"}, "instructions": "Heat."}) {
		t.Error("add should report storage failure")
	}
	if svc.Update(ctx, "Pasta", map[string]any{"category": "dinner"}) {
		t.Error("update should report storage failure")
	}
	if svc.Delete(ctx, "Pasta") {
		t.Error("delete should report storage failure")
	}

	store.failPersist = false
	recipes := svc.List(ctx)
	if len(recipes) != 1 || recipes[0].Name != "Pasta" || recipes[0].Category != "" {
		t.Errorf("failed writes must leave the collection untouched: %+v", recipes)
	}
}

func TestIDsNotReusedAfterDelete(t *testing.T) {
	svc := newTestService(&memStore{})
	ctx := context.Background()

	svc.Add(ctx, pastaCandidate())
	svc.Add(ctx, map[string]any{"name": "Soup", "ingredients": []string{"water"}, "instructions": "Heat."})
	svc.Delete(ctx, "Soup")
	svc.Add(ctx, map[string]any{"name": "Stew", "ingredients": []string{"beef"}, "instructions": "Simmer."})

	recipes := svc.List(ctx)
	seen := map[int64]string{}
	for _, r := range recipes {
		if prev, dup := seen[r.ID]; dup {
			t.Fatalf("id %d reused by %q and %q", r.ID, prev, r.Name)
		}
		seen[r.ID] = r.Name
	}
	for _, r := range recipes {
		if r.Name == "Stew" && r.ID != 3 {
			t.Errorf("expected Stew to get id 3, got %d", r.ID)
		}
	}
}
