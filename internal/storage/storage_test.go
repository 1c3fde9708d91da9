package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/recipevault/recipevault/internal/config"
	"github.com/recipevault/recipevault/internal/types"
)

func TestUnimplementedPanics(t *testing.T) {
	var s Store = Unimplemented{}

	assertPanics := func(name string, fn func()) {
		defer func() {
			r := recover()
			if r == nil {
				t.Errorf("%s: expected panic", name)
				return
			}
			err, ok := r.(error)
			if !ok || !errors.Is(err, types.ErrUnimplemented) {
				t.Errorf("%s: expected ErrUnimplemented, got %v", name, r)
			}
		}()
		fn()
	}

	assertPanics("List", func() { s.List(context.Background()) })
	assertPanics("Persist", func() { s.Persist(context.Background(), nil) })
}

func TestFactorySelectsBackend(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name string
		cfg  config.StorageConfig
		want string
	}{
		{
			name: "default is file",
			cfg:  config.StorageConfig{Path: filepath.Join(dir, "r.json")},
			want: "file",
		},
		{
			name: "boolean toggle selects mongodb",
			cfg: config.StorageConfig{
				UseDatabase: true,
				Mongo:       config.DefaultConfig().Storage.Mongo,
			},
			want: "mongodb",
		},
		{
			name: "explicit type overrides toggle",
			cfg: config.StorageConfig{
				UseDatabase: true,
				Type:        "sqlite",
				Path:        filepath.Join(dir, "r.db"),
			},
			want: "sqlite",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := New(tc.cfg, testLogger)
			if err != nil {
				t.Fatalf("factory failed: %v", err)
			}
			defer s.Close()
			if s.Name() != tc.want {
				t.Errorf("expected backend %q, got %q", tc.want, s.Name())
			}
		})
	}
}

func TestFactoryRejectsUnknownBackend(t *testing.T) {
	if _, err := New(config.StorageConfig{Type: "cassandra"}, testLogger); err == nil {
		t.Error("expected unknown backend to fail")
	}
}
