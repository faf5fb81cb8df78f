package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-editor/internal/config"
	"github.com/jonathan/resume-editor/internal/storage"
)

// Global flags shared by every command.
var (
	configPath string
	storePath  string
	backend    string
	storeKey   string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Storage directory (file backend) or database file (sqlite backend)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Storage backend: file, sqlite or memory")
	rootCmd.PersistentFlags().StringVar(&storeKey, "key", "", "Snapshot key")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

// resolveConfig layers the config file, the environment and the global flags
// over the defaults.
func resolveConfig() (config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	if storePath != "" {
		cfg.StoragePath = storePath
	}
	if backend != "" {
		cfg.Backend = backend
	}
	if storeKey != "" {
		cfg.Key = storeKey
	}
	if verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg.MergeWithDefaults(config.Defaults()), nil
}

// openGateway opens the configured store. The caller closes the store.
func openGateway(cfg config.Config) (*storage.Gateway, storage.Store, error) {
	path := cfg.StoragePath
	if cfg.Backend == storage.BackendSQLite && filepath.Ext(path) == "" {
		path = filepath.Join(path, "resume.db")
	}
	if cfg.Backend == storage.BackendSQLite {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	store, err := storage.Open(cfg.Backend, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", cfg.Backend, err)
	}
	if cfg.Verbose {
		log.Printf("[storage] Using %s backend at %s (key %s)", cfg.Backend, path, cfg.Key)
	}
	return storage.NewGateway(store, cfg.Key), store, nil
}

func closeStore(store storage.Store) {
	if err := store.Close(); err != nil {
		log.Printf("[storage] Failed to close store: %v", err)
	}
}
