// Package editor binds user events to document mutations, preview renders and
// debounced persistence.
package editor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/resume-editor/internal/completion"
	"github.com/jonathan/resume-editor/internal/metrics"
	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/scheduler"
	"github.com/jonathan/resume-editor/internal/storage"
	"github.com/jonathan/resume-editor/internal/types"
)

// Default debounce windows.
const (
	DefaultInputDelay = 100 * time.Millisecond
	DefaultSyncDelay  = 150 * time.Millisecond
)

// Scheduler keys owned by the session.
const (
	syncKey        = "sync"
	inputKeyPrefix = "input:"
)

// Options tunes a Session.
type Options struct {
	Variant      rendering.Variant
	InputDelay   time.Duration
	SyncDelay    time.Duration
	PersistDelay time.Duration
}

func (o Options) withDefaults() Options {
	if o.Variant == "" {
		o.Variant = rendering.VariantFull
	}
	if o.InputDelay <= 0 {
		o.InputDelay = DefaultInputDelay
	}
	if o.SyncDelay <= 0 {
		o.SyncDelay = DefaultSyncDelay
	}
	if o.PersistDelay <= 0 {
		o.PersistDelay = storage.DefaultPersistDelay
	}
	return o
}

// Session is the application state of one editor: the document plus the
// collaborators that persist and present it. A Session is not safe for
// concurrent use; every call, including fired debounce actions, must come from
// the same Loop.
type Session struct {
	opts     Options
	gateway  *storage.Gateway
	sched    *scheduler.Debouncer
	renderer *rendering.Renderer
	surface  Surface

	doc      *types.Document
	progress int
}

// NewSession restores the document from the gateway and returns the session
// owning it. Patches produced by fired debounce actions go to surface.
func NewSession(ctx context.Context, gateway *storage.Gateway, sched *scheduler.Debouncer, renderer *rendering.Renderer, surface Surface, opts Options) *Session {
	if surface == nil {
		surface = SurfaceFunc(func(...Patch) {})
	}
	s := &Session{
		opts:     opts.withDefaults(),
		gateway:  gateway,
		sched:    sched,
		renderer: renderer,
		surface:  surface,
	}
	s.doc = gateway.Load(ctx)
	s.refreshProgress()
	log.Printf("[editor] Session started (key=%s, completion=%d%%)", gateway.Key(), s.progress)
	return s
}

// Document returns a copy of the current document.
func (s *Session) Document() *types.Document {
	return s.doc.Clone()
}

// Progress returns the last computed completion percentage.
func (s *Session) Progress() int {
	return s.progress
}

// Variant returns the preview variant of the session.
func (s *Session) Variant() rendering.Variant {
	return s.opts.Variant
}

// Page returns the full editor page view model.
func (s *Session) Page() *rendering.Page {
	return rendering.BuildPage(s.doc, s.opts.Variant, s.progress)
}

// Preview returns the preview view model.
func (s *Session) Preview() *rendering.Preview {
	return rendering.BuildPreview(s.doc, s.opts.Variant)
}

// Flush writes any pending edits and saves now. Call it before shutdown.
func (s *Session) Flush() {
	s.sched.Drain()
}

func (s *Session) current() *types.Document {
	return s.doc
}

func (s *Session) refreshProgress() Patch {
	s.progress = completion.Compute(s.doc)
	metrics.Completion.Set(float64(s.progress))
	return progressPatch(s.progress)
}

// schedulePersist queues a debounced save of the document.
func (s *Session) schedulePersist() {
	s.gateway.SaveDebounced(s.sched, s.opts.PersistDelay, s.current)
}

// scheduleSync queues the combined persist and progress refresh used after
// field edits.
func (s *Session) scheduleSync() {
	s.sched.Schedule(syncKey, s.opts.SyncDelay, func() {
		s.schedulePersist()
		s.surface.Apply(s.refreshProgress())
	})
}

// blockPatch re-renders one preview block. Blocks the variant does not show
// produce no patch.
func (s *Session) blockPatch(block string) ([]Patch, error) {
	shown := false
	for _, b := range rendering.Blocks(s.opts.Variant) {
		if b == block {
			shown = true
			break
		}
	}
	if !shown {
		return nil, nil
	}
	html, err := s.renderer.RenderBlock(block, s.Preview())
	if err != nil {
		return nil, fmt.Errorf("failed to render %s block: %w", block, err)
	}
	return []Patch{{Op: OpReplace, Target: rendering.BlockElementID(block), HTML: html}}, nil
}

func (s *Session) chipsPatch() (Patch, error) {
	html, err := s.renderer.RenderSkillChips(rendering.BuildSkillChips(s.doc))
	if err != nil {
		return Patch{}, fmt.Errorf("failed to render skill tags: %w", err)
	}
	return Patch{Op: OpReplace, Target: rendering.SkillChipsElementID, HTML: html}, nil
}

// Hydrate renders everything from the current document: every form value,
// every row, every preview block and the progress value.
func (s *Session) Hydrate() ([]Patch, error) {
	var patches []Patch
	page := s.Page()
	for _, f := range page.Contact {
		patches = append(patches, Patch{Op: OpValue, Target: f.Key, Value: f.Value})
	}

	chips, err := s.chipsPatch()
	if err != nil {
		return nil, err
	}
	patches = append(patches, chips)

	var eduHTML, expHTML string
	for _, row := range page.EducationRows {
		html, err := s.renderer.RenderEducationRow(row)
		if err != nil {
			return nil, fmt.Errorf("failed to render education row: %w", err)
		}
		eduHTML += html
	}
	for _, row := range page.ExperienceRows {
		html, err := s.renderer.RenderExperienceRow(row)
		if err != nil {
			return nil, fmt.Errorf("failed to render experience row: %w", err)
		}
		expHTML += html
	}
	patches = append(patches,
		Patch{Op: OpInner, Target: educationListTarget, HTML: eduHTML},
		Patch{Op: OpInner, Target: experienceListTarget, HTML: expHTML},
	)

	preview, err := s.renderer.RenderPreview(page.Preview)
	if err != nil {
		return nil, fmt.Errorf("failed to render preview: %w", err)
	}
	patches = append(patches, Patch{Op: OpReplace, Target: previewTarget, HTML: preview})
	patches = append(patches, s.refreshProgress())
	return patches, nil
}

// ClearAll deletes the persisted snapshot, resets the document and asks the
// surface to reload. Pending debounced work is dropped first so no stale save
// can write the old document back. When the delete fails the document is left
// untouched, its save is rescheduled and the error is returned.
func (s *Session) ClearAll(ctx context.Context) ([]Patch, error) {
	dropped := s.sched.CancelPrefix("")
	if err := s.gateway.Clear(ctx); err != nil {
		s.schedulePersist()
		return nil, fmt.Errorf("failed to clear saved state: %w", err)
	}
	s.doc.ResetToDefault()
	s.refreshProgress()
	log.Printf("[editor] Cleared document (dropped %d pending actions)", dropped)
	return []Patch{{Op: OpReload}}, nil
}
