package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/recipevault/recipevault/internal/types"
)

// FileStore persists the recipe collection as a pretty-printed JSON
// array in a single flat file. Every persist overwrites the file with
// the full collection.
type FileStore struct {
	Unimplemented

	path   string
	logger *slog.Logger
}

// NewFileStore creates a new flat-file storage backend.
func NewFileStore(path string, logger *slog.Logger) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	return &FileStore{
		path:   path,
		logger: logger.With("component", "file_store"),
	}, nil
}

func (s *FileStore) Name() string { return "file" }

func (s *FileStore) List(ctx context.Context) []types.Recipe {
	data, err := os.ReadFile(s.path)
	if err != nil {
		// A missing file is the normal first-run state.
		if !os.IsNotExist(err) {
			s.logger.Warn("read failed, treating store as empty", "path", s.path, "error", err)
		}
		return []types.Recipe{}
	}

	var recipes []types.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		serr := &types.StorageError{Backend: s.Name(), Op: "list", Err: err}
		s.logger.Warn("malformed store file, treating as empty", "path", s.path, "error", serr)
		return []types.Recipe{}
	}

	return types.CanonicalizeAll(recipes)
}

func (s *FileStore) Persist(ctx context.Context, recipes []types.Recipe) bool {
	f, err := os.Create(s.path)
	if err != nil {
		s.logger.Error("persist failed", "error", &types.StorageError{Backend: s.Name(), Op: "persist", Err: err})
		return false
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(types.CanonicalizeAll(recipes)); err != nil {
		s.logger.Error("persist failed", "error", &types.StorageError{Backend: s.Name(), Op: "persist", Err: err})
		return false
	}

	s.logger.Debug("collection written", "path", s.path, "recipes", len(recipes))
	return true
}

func (s *FileStore) Close() error { return nil }
