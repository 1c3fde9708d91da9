package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/recipevault/recipevault/internal/types"
)

// SQLiteStore persists the recipe collection as JSON rows in a single
// SQLite table, one row per recipe in collection order. Persist
// replaces all rows in one transaction.
type SQLiteStore struct {
	Unimplemented

	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore opens (creating if needed) the database file and
// ensures the recipes table exists.
func NewSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS recipes (
		seq INTEGER PRIMARY KEY,
		doc TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create recipes table: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		path:   path,
		logger: logger.With("component", "sqlite_store"),
	}, nil
}

func (s *SQLiteStore) Name() string { return "sqlite" }

func (s *SQLiteStore) List(ctx context.Context) []types.Recipe {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM recipes ORDER BY seq`)
	if err != nil {
		s.logger.Warn("list failed, treating store as empty", "error", &types.StorageError{Backend: s.Name(), Op: "list", Err: err})
		return []types.Recipe{}
	}
	defer rows.Close()

	var recipes []types.Recipe
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			s.logger.Warn("list failed, treating store as empty", "error", &types.StorageError{Backend: s.Name(), Op: "list", Err: err})
			return []types.Recipe{}
		}
		var r types.Recipe
		if err := json.Unmarshal(doc, &r); err != nil {
			s.logger.Warn("malformed row skipped", "error", err)
			continue
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		s.logger.Warn("list failed, treating store as empty", "error", &types.StorageError{Backend: s.Name(), Op: "list", Err: err})
		return []types.Recipe{}
	}

	return types.CanonicalizeAll(recipes)
}

func (s *SQLiteStore) Persist(ctx context.Context, recipes []types.Recipe) bool {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("persist failed", "error", &types.StorageError{Backend: s.Name(), Op: "persist", Err: err})
		return false
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipes`); err != nil {
		s.logger.Error("persist failed", "error", &types.StorageError{Backend: s.Name(), Op: "persist", Err: err})
		return false
	}
	for i, r := range recipes {
		r.Canonicalize()
		doc, err := json.Marshal(r)
		if err != nil {
			s.logger.Error("persist failed", "error", &types.StorageError{Backend: s.Name(), Op: "persist", Err: err})
			return false
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO recipes (seq, doc) VALUES (?, ?)`, i+1, doc); err != nil {
			s.logger.Error("persist failed", "error", &types.StorageError{Backend: s.Name(), Op: "persist", Err: err})
			return false
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("persist failed", "error", &types.StorageError{Backend: s.Name(), Op: "persist", Err: err})
		return false
	}

	s.logger.Debug("collection written", "path", s.path, "recipes", len(recipes))
	return true
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
