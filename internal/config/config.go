// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-editor/internal/storage"
)

// Environment variables that override file values.
const (
	EnvStore   = "RESUME_EDITOR_STORE"
	EnvBackend = "RESUME_EDITOR_BACKEND"
)

// Config represents the editor configuration that can be loaded from a JSON or
// YAML file. All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Storage
	StoragePath string `json:"storage_path,omitempty" yaml:"storage_path,omitempty"` // Directory (file backend) or database file (sqlite backend)
	Backend     string `json:"backend,omitempty" yaml:"backend,omitempty"`           // file, sqlite or memory
	Key         string `json:"key,omitempty" yaml:"key,omitempty"`                   // Snapshot key

	// Debounce windows in milliseconds
	InputDelayMS   int `json:"input_delay_ms,omitempty" yaml:"input_delay_ms,omitempty"`
	SyncDelayMS    int `json:"sync_delay_ms,omitempty" yaml:"sync_delay_ms,omitempty"`
	PersistDelayMS int `json:"persist_delay_ms,omitempty" yaml:"persist_delay_ms,omitempty"`

	// Server
	Port    int    `json:"port,omitempty" yaml:"port,omitempty"`       // Local HTTP port
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty"` // full or minimal

	// Behavior
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		StoragePath:    defaultStoragePath(),
		Backend:        "file",
		Key:            "resumeState",
		InputDelayMS:   100,
		SyncDelayMS:    150,
		PersistDelayMS: 500,
		Port:           8080,
		Variant:        "full",
	}
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".resume-editor"
	}
	return filepath.Join(dir, "resume-editor")
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides storage settings from the environment.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvStore)); v != "" {
		c.StoragePath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBackend)); v != "" {
		c.Backend = v
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	switch c.Backend {
	case "", "file", "sqlite", "memory":
	default:
		return fmt.Errorf("config error: 'backend' must be one of file, sqlite, memory (got %q)", c.Backend)
	}

	switch c.Variant {
	case "", "full", "minimal":
	default:
		return fmt.Errorf("config error: 'variant' must be full or minimal (got %q)", c.Variant)
	}

	// Validate numeric ranges
	if c.InputDelayMS < 0 || c.SyncDelayMS < 0 || c.PersistDelayMS < 0 {
		return fmt.Errorf("config error: delays must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.Key != "" {
		if err := storage.ValidKey(c.Key); err != nil {
			return fmt.Errorf("config error: 'key' may only contain letters, digits, '.', '_' and '-': %w", err)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.StoragePath == "" {
		result.StoragePath = defaults.StoragePath
	}
	if result.Backend == "" {
		result.Backend = defaults.Backend
	}
	if result.Key == "" {
		result.Key = defaults.Key
	}
	if result.Variant == "" {
		result.Variant = defaults.Variant
	}

	// Int fields: use default if zero
	if result.InputDelayMS == 0 {
		result.InputDelayMS = defaults.InputDelayMS
	}
	if result.SyncDelayMS == 0 {
		result.SyncDelayMS = defaults.SyncDelayMS
	}
	if result.PersistDelayMS == 0 {
		result.PersistDelayMS = defaults.PersistDelayMS
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// InputDelay returns the keystroke debounce window.
func (c *Config) InputDelay() time.Duration {
	return time.Duration(c.InputDelayMS) * time.Millisecond
}

// SyncDelay returns the persist and progress debounce window.
func (c *Config) SyncDelay() time.Duration {
	return time.Duration(c.SyncDelayMS) * time.Millisecond
}

// PersistDelay returns the storage write debounce window.
func (c *Config) PersistDelay() time.Duration {
	return time.Duration(c.PersistDelayMS) * time.Millisecond
}
