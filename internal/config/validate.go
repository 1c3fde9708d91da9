package config

import (
	"fmt"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	backend := cfg.Storage.Backend()
	switch backend {
	case "file", "sqlite":
		if cfg.Storage.Path == "" {
			return fmt.Errorf("storage.path must be set for the %s backend", backend)
		}
	case "mongodb":
		if cfg.Storage.Mongo.URI == "" {
			return fmt.Errorf("storage.mongo.uri must be set for the mongodb backend")
		}
		if cfg.Storage.Mongo.Database == "" {
			return fmt.Errorf("storage.mongo.database must be set")
		}
		if cfg.Storage.Mongo.Collection == "" {
			return fmt.Errorf("storage.mongo.collection must be set")
		}
		if cfg.Storage.Mongo.ConnectTimeout <= 0 {
			return fmt.Errorf("storage.mongo.connect_timeout must be > 0")
		}
	default:
		return fmt.Errorf("storage.type %q is not supported (valid: file, mongodb, sqlite)", backend)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}
