package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for RecipeVault.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// StorageConfig selects and parameterizes the storage backend.
type StorageConfig struct {
	// UseDatabase is the legacy boolean toggle: truthy selects the
	// document database backend, anything else the flat file.
	UseDatabase bool `mapstructure:"use_database" yaml:"use_database"`

	// Type overrides UseDatabase when set: file, mongodb, or sqlite.
	Type string `mapstructure:"type" yaml:"type"`

	// Path is the backing file for the file and sqlite backends.
	Path string `mapstructure:"path" yaml:"path"`

	Mongo MongoConfig `mapstructure:"mongo" yaml:"mongo"`
}

// MongoConfig parameterizes the document database backend.
type MongoConfig struct {
	URI            string        `mapstructure:"uri"             yaml:"uri"`
	Database       string        `mapstructure:"database"        yaml:"database"`
	Collection     string        `mapstructure:"collection"      yaml:"collection"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" yaml:"connect_timeout"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// Backend resolves the configured backend name. An explicit type wins;
// otherwise the boolean toggle picks mongodb or file.
func (s StorageConfig) Backend() string {
	if s.Type != "" {
		return s.Type
	}
	if s.UseDatabase {
		return "mongodb"
	}
	return "file"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			UseDatabase: false,
			Path:        "./data/recipes.json",
			Mongo: MongoConfig{
				URI:            "mongodb://localhost:27017",
				Database:       "recipevault",
				Collection:     "recipes",
				ConnectTimeout: 10 * time.Second,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
