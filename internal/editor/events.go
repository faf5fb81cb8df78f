package editor

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jonathan/resume-editor/internal/metrics"
	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/jonathan/resume-editor/internal/validation"
)

// EventType names a user interaction.
type EventType string

// Supported events.
const (
	EventInput            EventType = "input"
	EventChange           EventType = "change"
	EventBlur             EventType = "blur"
	EventSkillKey         EventType = "skill-key"
	EventSkillRemove      EventType = "skill-remove"
	EventEducationAdd     EventType = "education-add"
	EventEducationUpdate  EventType = "education-update"
	EventEducationRemove  EventType = "education-remove"
	EventExperienceAdd    EventType = "experience-add"
	EventExperienceUpdate EventType = "experience-update"
	EventExperienceRemove EventType = "experience-remove"
	EventAdditionalSet    EventType = "additional-set"
	EventAdditionalRemove EventType = "additional-remove"
	EventSectionSet       EventType = "section-set"
	EventSectionRemove    EventType = "section-remove"
	EventPhoto            EventType = "photo"
	EventTheme            EventType = "theme"
	EventClear            EventType = "clear"
	EventHydrate          EventType = "hydrate"
)

var (
	// ErrUnknownEvent is returned for event types the editor does not handle.
	ErrUnknownEvent = errors.New("unknown event")
	// ErrNotConfirmed is returned when a destructive event lacks confirmation.
	ErrNotConfirmed = errors.New("confirmation required")
)

// Event is one user interaction. Field names a contact field, an additional
// field kind or a section kind; ID and Key address an entry field; Index
// addresses a skill tag.
type Event struct {
	Type    EventType `json:"type"`
	Field   string    `json:"field,omitempty"`
	ID      string    `json:"id,omitempty"`
	Key     string    `json:"key,omitempty"`
	Value   string    `json:"value,omitempty"`
	Index   int       `json:"index,omitempty"`
	Confirm bool      `json:"confirm,omitempty"`
}

// Skill commit keystrokes.
const (
	KeyEnter = "Enter"
	KeyComma = ","
)

const (
	educationListTarget  = "education-list"
	experienceListTarget = "experience-list"
	previewTarget        = "resume-preview"
)

// fieldRules maps the validated contact fields to their rule.
var fieldRules = map[string]validation.Rule{
	types.FieldName:  validation.RuleName,
	types.FieldEmail: validation.RuleEmail,
	types.FieldPhone: validation.RulePhone,
}

// blockForField returns the preview block showing a contact field.
func blockForField(field string) string {
	if field == types.FieldSummary {
		return rendering.BlockSummary
	}
	return rendering.BlockContact
}

// Dispatch handles one event and returns the patches to apply right away.
// Patches produced later by debounced actions go to the session surface.
func (s *Session) Dispatch(ctx context.Context, ev Event) ([]Patch, error) {
	var (
		patches []Patch
		err     error
	)
	switch ev.Type {
	case EventInput:
		err = s.onInput(ev)
	case EventChange:
		patches, err = s.onChange(ev)
	case EventBlur:
		patches = s.onBlur(ev)
	case EventSkillKey:
		patches, err = s.onSkillKey(ev)
	case EventSkillRemove:
		patches, err = s.onSkillRemove(ev)
	case EventEducationAdd:
		patches, err = s.onEducationAdd()
	case EventEducationUpdate:
		patches, err = s.onEducationUpdate(ev)
	case EventEducationRemove:
		patches, err = s.onEducationRemove(ev)
	case EventExperienceAdd:
		patches, err = s.onExperienceAdd()
	case EventExperienceUpdate:
		patches, err = s.onExperienceUpdate(ev)
	case EventExperienceRemove:
		patches, err = s.onExperienceRemove(ev)
	case EventAdditionalSet:
		patches, err = s.onAdditionalSet(ev)
	case EventAdditionalRemove:
		patches, err = s.onAdditionalRemove(ev)
	case EventSectionSet:
		patches, err = s.onSectionSet(ev)
	case EventSectionRemove:
		patches, err = s.onSectionRemove(ev)
	case EventPhoto:
		patches, err = s.onPhoto(ev)
	case EventTheme:
		patches, err = s.onTheme(ev)
	case EventClear:
		if !ev.Confirm {
			return nil, ErrNotConfirmed
		}
		patches, err = s.ClearAll(ctx)
	case EventHydrate:
		patches, err = s.Hydrate()
	default:
		log.Printf("[editor] Ignoring unknown event %q", ev.Type)
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
	metrics.EventsHandled.WithLabelValues(string(ev.Type)).Inc()
	return patches, err
}

// onInput coalesces keystrokes per field before writing the value.
func (s *Session) onInput(ev Event) error {
	if _, err := s.doc.Field(ev.Field); err != nil {
		return err
	}
	field, value := ev.Field, ev.Value
	s.sched.Schedule(inputKeyPrefix+field, s.opts.InputDelay, func() {
		patches, err := s.applyField(field, value)
		if err != nil {
			log.Printf("[editor] Failed to apply %s: %v", field, err)
			return
		}
		s.surface.Apply(patches...)
	})
	return nil
}

// onChange writes the committed value immediately, superseding pending
// keystrokes for the same field.
func (s *Session) onChange(ev Event) ([]Patch, error) {
	if _, err := s.doc.Field(ev.Field); err != nil {
		return nil, err
	}
	s.sched.Cancel(inputKeyPrefix + ev.Field)
	return s.applyField(ev.Field, ev.Value)
}

// applyField writes a contact field, re-renders the block showing it and
// schedules the persist and progress refresh.
func (s *Session) applyField(field, value string) ([]Patch, error) {
	if err := s.doc.SetField(field, value); err != nil {
		return nil, err
	}
	patches, err := s.blockPatch(blockForField(field))
	if err != nil {
		return nil, err
	}
	s.scheduleSync()
	return patches, nil
}

func (s *Session) onBlur(ev Event) []Patch {
	rule, ok := fieldRules[ev.Field]
	if !ok {
		return nil
	}
	annotations := &fieldErrors{}
	validation.ValidateFields([]validation.Field{{ID: ev.Field, Value: ev.Value, Rule: rule}}, annotations)
	return annotations.patches
}

// structural finishes an edit of a collection or a section: it re-renders the
// given blocks, persists and refreshes the progress right away.
func (s *Session) structural(extra []Patch, blocks ...string) ([]Patch, error) {
	patches := extra
	for _, b := range blocks {
		p, err := s.blockPatch(b)
		if err != nil {
			return nil, err
		}
		patches = append(patches, p...)
	}
	s.schedulePersist()
	return append(patches, s.refreshProgress()), nil
}

func (s *Session) onSkillKey(ev Event) ([]Patch, error) {
	if ev.Key != KeyEnter && ev.Key != KeyComma {
		return nil, nil
	}
	if !s.doc.AddSkill(ev.Value) {
		return nil, nil
	}
	chips, err := s.chipsPatch()
	if err != nil {
		return nil, err
	}
	clearInput := Patch{Op: OpValue, Target: SkillInputTarget, Value: ""}
	return s.structural([]Patch{chips, clearInput}, rendering.BlockSkills)
}

func (s *Session) onSkillRemove(ev Event) ([]Patch, error) {
	if !s.doc.RemoveSkill(ev.Index) {
		return nil, nil
	}
	chips, err := s.chipsPatch()
	if err != nil {
		return nil, err
	}
	return s.structural([]Patch{chips}, rendering.BlockSkills)
}

func (s *Session) onEducationAdd() ([]Patch, error) {
	entry := s.doc.AddEducationEntry()
	html, err := s.renderer.RenderEducationRow(rendering.NewEducationRow(entry))
	if err != nil {
		return nil, fmt.Errorf("failed to render education row: %w", err)
	}
	row := Patch{Op: OpAppend, Target: educationListTarget, HTML: html}
	return s.structural([]Patch{row}, rendering.BlockEducation)
}

func (s *Session) onEducationUpdate(ev Event) ([]Patch, error) {
	found, err := s.doc.SetEducationField(ev.ID, ev.Key, ev.Value)
	if err != nil || !found {
		return nil, err
	}
	return s.structural(nil, rendering.BlockEducation)
}

func (s *Session) onEducationRemove(ev Event) ([]Patch, error) {
	if !s.doc.RemoveEducationEntry(ev.ID) {
		return nil, nil
	}
	row := Patch{Op: OpRemove, Target: rendering.EducationRowID(ev.ID)}
	return s.structural([]Patch{row}, rendering.BlockEducation)
}

func (s *Session) onExperienceAdd() ([]Patch, error) {
	entry := s.doc.AddExperienceEntry()
	html, err := s.renderer.RenderExperienceRow(rendering.NewExperienceRow(entry))
	if err != nil {
		return nil, fmt.Errorf("failed to render experience row: %w", err)
	}
	row := Patch{Op: OpAppend, Target: experienceListTarget, HTML: html}
	return s.structural([]Patch{row}, rendering.BlockExperience)
}

func (s *Session) onExperienceUpdate(ev Event) ([]Patch, error) {
	found, err := s.doc.SetExperienceField(ev.ID, ev.Key, ev.Value)
	if err != nil || !found {
		return nil, err
	}
	return s.structural(nil, rendering.BlockExperience)
}

func (s *Session) onExperienceRemove(ev Event) ([]Patch, error) {
	if !s.doc.RemoveExperienceEntry(ev.ID) {
		return nil, nil
	}
	row := Patch{Op: OpRemove, Target: rendering.ExperienceRowID(ev.ID)}
	return s.structural([]Patch{row}, rendering.BlockExperience)
}

func (s *Session) onAdditionalSet(ev Event) ([]Patch, error) {
	if err := s.doc.SetAdditionalField(ev.Field, ev.Value); err != nil {
		return nil, err
	}
	patches, err := s.blockPatch(rendering.BlockContact)
	if err != nil {
		return nil, err
	}
	s.scheduleSync()
	return patches, nil
}

func (s *Session) onAdditionalRemove(ev Event) ([]Patch, error) {
	s.doc.RemoveAdditionalField(ev.Field)
	return s.structural(nil, rendering.BlockContact)
}

func (s *Session) onSectionSet(ev Event) ([]Patch, error) {
	if err := s.doc.SetOptionalSection(ev.Field, ev.Value); err != nil {
		return nil, err
	}
	patches, err := s.blockPatch(rendering.BlockSections)
	if err != nil {
		return nil, err
	}
	s.scheduleSync()
	return patches, nil
}

func (s *Session) onSectionRemove(ev Event) ([]Patch, error) {
	s.doc.RemoveOptionalSection(ev.Field)
	return s.structural(nil, rendering.BlockSections)
}

// onPhoto stores the data URL verbatim.
func (s *Session) onPhoto(ev Event) ([]Patch, error) {
	s.doc.Photo = ev.Value
	return s.structural(nil, rendering.BlockContact)
}

// onTheme switches the preview variant class, which lives on the preview root.
func (s *Session) onTheme(ev Event) ([]Patch, error) {
	if err := s.doc.SetTheme(types.Theme(ev.Value)); err != nil {
		return nil, err
	}
	html, err := s.renderer.RenderPreview(s.Preview())
	if err != nil {
		return nil, fmt.Errorf("failed to render preview: %w", err)
	}
	return s.structural([]Patch{{Op: OpReplace, Target: previewTarget, HTML: html}})
}
