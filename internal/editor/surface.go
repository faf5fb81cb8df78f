package editor

import (
	"strconv"
	"sync"
)

// Patch operations understood by the browser surface.
const (
	OpReplace  = "replace"
	OpInner    = "inner"
	OpAppend   = "append"
	OpRemove   = "remove"
	OpValue    = "value"
	OpText     = "text"
	OpProgress = "progress"
	OpReload   = "reload"
)

// Patch is one change to apply to the presentation surface. Target is an
// element id.
type Patch struct {
	Op     string `json:"op"`
	Target string `json:"target,omitempty"`
	HTML   string `json:"html,omitempty"`
	Value  string `json:"value,omitempty"`
}

// ProgressTarget is the element id of the progress indicator.
const ProgressTarget = "progress-bar"

// SkillInputTarget is the element id of the pending skill text input.
const SkillInputTarget = "skill-input"

// FieldErrorTarget returns the element id showing the error of a form field.
func FieldErrorTarget(field string) string {
	return "err-" + field
}

func progressPatch(pct int) Patch {
	return Patch{Op: OpProgress, Target: ProgressTarget, Value: strconv.Itoa(pct)}
}

// Surface receives patches produced outside of a direct event response, such
// as the progress update after a debounce fires.
type Surface interface {
	Apply(patches ...Patch)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(patches ...Patch)

func (f SurfaceFunc) Apply(patches ...Patch) { f(patches...) }

// Recorder is a Surface that keeps every patch it receives.
type Recorder struct {
	mu      sync.Mutex
	patches []Patch
}

func (r *Recorder) Apply(patches ...Patch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patches = append(r.patches, patches...)
}

// Patches returns a copy of the recorded patches.
func (r *Recorder) Patches() []Patch {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Patch(nil), r.patches...)
}

// Drain returns the recorded patches and forgets them.
func (r *Recorder) Drain() []Patch {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.patches
	r.patches = nil
	return out
}

// fieldErrors collects validation annotations as text patches.
type fieldErrors struct {
	patches []Patch
}

func (f *fieldErrors) SetFieldError(fieldID, message string) {
	f.patches = append(f.patches, Patch{Op: OpText, Target: FieldErrorTarget(fieldID), Value: message})
}
