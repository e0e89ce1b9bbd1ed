// Package config provides configuration loading and structs for the vecsearch server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Index   IndexConfig   `yaml:"index"`
	Search  SearchConfig  `yaml:"search"`
	Watch   WatchConfig   `yaml:"watch"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// WatchConfig holds directory watch settings for NDJSON ingestion.
type WatchConfig struct {
	Directories []string `yaml:"directories"`
	Extensions  []string `yaml:"extensions"`
	Recursive   *bool    `yaml:"recursive"`
}

// RecursiveOrDefault returns whether to watch recursively; defaults to true when unset.
func (w *WatchConfig) RecursiveOrDefault() bool {
	if w.Recursive != nil {
		return *w.Recursive
	}
	return true
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds paths for the document database and the point index.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
	// IndexPath is the Bleve index directory, or the snapshot file of the memory index.
	IndexPath string `yaml:"index_path"`
}

// IndexConfig holds point index and ingestion settings.
type IndexConfig struct {
	// Type is "bleve" or "memory".
	Type string `yaml:"type"`
	// OnFieldError is "reject" (fail the whole document) or "skip" (drop the bad field).
	OnFieldError string `yaml:"on_field_error"`
	// Concurrency bounds parallel document ingestion in bulk requests.
	Concurrency int `yaml:"concurrency"`
	// MappingFile is an optional JSON mapping applied at startup.
	MappingFile string `yaml:"mapping_file"`
}

// SearchConfig holds result paging settings.
type SearchConfig struct {
	DefaultSize int `yaml:"default_size"`
	MaxSize     int `yaml:"max_size"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// EnabledOrDefault returns whether metrics are served; defaults to true when unset.
func (m *MetricsConfig) EnabledOrDefault() bool {
	if m.Enabled != nil {
		return *m.Enabled
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read, parsed, or fails validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.IndexPath = expandPath(cfg.Storage.IndexPath, configDir)
	if cfg.Index.MappingFile != "" {
		cfg.Index.MappingFile = expandPath(cfg.Index.MappingFile, configDir)
	}
	for i := range cfg.Watch.Directories {
		cfg.Watch.Directories[i] = expandPath(cfg.Watch.Directories[i], configDir)
	}

	return &cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Index.Type {
	case IndexTypeBleve, IndexTypeMemory:
	default:
		return fmt.Errorf("invalid index.type %q (supported: bleve, memory)", c.Index.Type)
	}
	switch c.Index.OnFieldError {
	case OnFieldErrorReject, OnFieldErrorSkip:
	default:
		return fmt.Errorf("invalid index.on_field_error %q (supported: reject, skip)", c.Index.OnFieldError)
	}
	if c.Search.DefaultSize > c.Search.MaxSize {
		return fmt.Errorf("search.default_size %d exceeds search.max_size %d", c.Search.DefaultSize, c.Search.MaxSize)
	}
	return nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
