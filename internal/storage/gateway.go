package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/jonathan/resume-editor/internal/metrics"
	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/types"
)

// DefaultKey is the storage key of the document snapshot.
const DefaultKey = "resumeState"

// DefaultPersistDelay is the trailing quiet window before a debounced save.
const DefaultPersistDelay = 500 * time.Millisecond

// Scheduler runs an action after delay, replacing any action pending under key.
type Scheduler interface {
	Schedule(key string, delay time.Duration, action func())
}

// Gateway serializes the document to and from a Store. Storage and decode
// failures are logged and never returned to the editing path.
type Gateway struct {
	store Store
	key   string
}

// NewGateway creates a Gateway storing the snapshot under key.
func NewGateway(store Store, key string) *Gateway {
	if key == "" {
		key = DefaultKey
	}
	return &Gateway{store: store, key: key}
}

// Key returns the storage key of the snapshot.
func (g *Gateway) Key() string {
	return g.key
}

// PersistKey is the scheduler key used for debounced saves.
func (g *Gateway) PersistKey() string {
	return "persist:" + g.key
}

// Load reads the last snapshot and merges it over the default document. Any
// read, shape, or parse failure yields the default document.
func (g *Gateway) Load(ctx context.Context) *types.Document {
	data, err := g.store.Get(ctx, g.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[storage] Failed to load state: %v", err)
			metrics.LoadFallbacks.WithLabelValues("read").Inc()
		}
		return types.NewDocument()
	}

	if err := schemas.ValidateDocument(data); err != nil {
		log.Printf("[storage] Discarding malformed state: %v", err)
		metrics.LoadFallbacks.WithLabelValues("shape").Inc()
		return types.NewDocument()
	}

	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("[storage] Failed to parse state: %v", err)
		metrics.LoadFallbacks.WithLabelValues("parse").Inc()
		return types.NewDocument()
	}
	return &doc
}

// Save writes the full document. It reports whether the snapshot reached
// storage; on failure the in-memory document stays authoritative.
func (g *Gateway) Save(ctx context.Context, doc *types.Document) bool {
	data, err := json.Marshal(doc)
	if err != nil {
		log.Printf("[storage] Failed to encode state: %v", err)
		metrics.PersistFailures.WithLabelValues("encode").Inc()
		return false
	}
	if err := g.store.Set(ctx, g.key, data); err != nil {
		log.Printf("[storage] Failed to save state: %v", err)
		metrics.PersistFailures.WithLabelValues("write").Inc()
		return false
	}
	metrics.PersistWrites.Inc()
	return true
}

// SaveDebounced schedules a save of current() after delay. A later call made
// before the delay elapses replaces the pending save, so only the final state
// of a burst of edits is written.
func (g *Gateway) SaveDebounced(sched Scheduler, delay time.Duration, current func() *types.Document) {
	sched.Schedule(g.PersistKey(), delay, func() {
		g.Save(context.Background(), current())
	})
}

// Clear deletes the persisted snapshot.
func (g *Gateway) Clear(ctx context.Context) error {
	if err := g.store.Delete(ctx, g.key); err != nil {
		log.Printf("[storage] Failed to clear state: %v", err)
		metrics.PersistFailures.WithLabelValues("delete").Inc()
		return err
	}
	return nil
}
