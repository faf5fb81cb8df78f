// Package types provides the document model edited by the resume editor.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Theme selects a presentation variant of the preview.
type Theme string

// Supported themes.
const (
	ThemeModern  Theme = "modern"
	ThemeMinimal Theme = "minimal"
	ThemeCompact Theme = "compact"
)

// DefaultTheme is applied to new and backfilled documents.
const DefaultTheme = ThemeModern

// Themes lists every supported theme in display order.
var Themes = []Theme{ThemeModern, ThemeMinimal, ThemeCompact}

// Valid reports whether t is one of the supported themes.
func (t Theme) Valid() bool {
	for _, known := range Themes {
		if t == known {
			return true
		}
	}
	return false
}

// Scalar contact field names as they appear in the persisted snapshot.
const (
	FieldName     = "name"
	FieldTitle    = "title"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldLocation = "location"
	FieldWebsite  = "website"
	FieldLinkedIn = "linkedin"
	FieldGitHub   = "github"
	FieldSummary  = "summary"
	FieldPhoto    = "photo"
)

// ContactFields lists the scalar fields in form order.
var ContactFields = []string{
	FieldName, FieldTitle, FieldEmail, FieldPhone, FieldLocation,
	FieldWebsite, FieldLinkedIn, FieldGitHub, FieldSummary,
}

var (
	// ErrUnknownField is returned when a field name is not part of the document.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidTheme is returned for theme values outside Themes.
	ErrInvalidTheme = errors.New("invalid theme")
)

// EducationEntry is one row of the education collection.
type EducationEntry struct {
	ID       string `json:"id"`
	School   string `json:"school"`
	Degree   string `json:"degree"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location"`
	Details  string `json:"details"`
}

// ExperienceEntry is one row of the experience collection.
type ExperienceEntry struct {
	ID       string   `json:"id"`
	Role     string   `json:"role"`
	Company  string   `json:"company"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Location string   `json:"location"`
	Bullets  []string `json:"bullets"`
}

// Document is the canonical in-memory resume. It is always total: every
// collection is non-nil and Theme is always a supported value.
type Document struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Summary  string `json:"summary"`
	// Photo holds a data URL produced by the client's file reader, stored verbatim.
	Photo string `json:"photo,omitempty"`

	Skills     []string          `json:"skills"`
	Education  []EducationEntry  `json:"education"`
	Experience []ExperienceEntry `json:"experience"`
	Theme      Theme             `json:"theme"`

	AdditionalFields map[string]string `json:"additionalFields,omitempty"`
	OptionalSections map[string]string `json:"optionalSections,omitempty"`

	// Extra keeps top-level snapshot keys this model does not know about so a
	// save writes them back unchanged.
	Extra map[string]json.RawMessage `json:"-"`
}

// documentJSON strips the custom marshalers from Document.
type documentJSON Document

var knownKeys = map[string]bool{
	"name": true, "title": true, "email": true, "phone": true, "location": true,
	"website": true, "linkedin": true, "github": true, "summary": true, "photo": true,
	"skills": true, "education": true, "experience": true, "theme": true,
	"additionalFields": true, "optionalSections": true,
}

// Default returns the blank document shape.
func Default() Document {
	return Document{
		Skills:     []string{},
		Education:  []EducationEntry{},
		Experience: []ExperienceEntry{},
		Theme:      DefaultTheme,
	}
}

// NewDocument returns a pointer to a blank document.
func NewDocument() *Document {
	d := Default()
	return &d
}

// ResetToDefault replaces every field with the blank shape.
func (d *Document) ResetToDefault() {
	*d = Default()
}

// Backfill restores the document invariants after a decode: nil collections
// become empty, unknown themes fall back to the default, entries without a
// unique id get a fresh one and bullets are normalized.
func (d *Document) Backfill() {
	if d.Skills == nil {
		d.Skills = []string{}
	}
	if d.Education == nil {
		d.Education = []EducationEntry{}
	}
	if d.Experience == nil {
		d.Experience = []ExperienceEntry{}
	}
	if !d.Theme.Valid() {
		d.Theme = DefaultTheme
	}

	seen := make(map[string]bool)
	for i := range d.Education {
		if d.Education[i].ID == "" || seen[d.Education[i].ID] {
			d.Education[i].ID = newID()
		}
		seen[d.Education[i].ID] = true
	}
	for i := range d.Experience {
		if d.Experience[i].ID == "" || seen[d.Experience[i].ID] {
			d.Experience[i].ID = newID()
		}
		seen[d.Experience[i].ID] = true
		d.Experience[i].Bullets = NormalizeBullets(d.Experience[i].Bullets)
	}
}

// MarshalJSON writes the known fields followed by any preserved extra keys.
func (d Document) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(documentJSON(d))
	if err != nil {
		return nil, err
	}
	if len(d.Extra) == 0 {
		return data, nil
	}

	merged := make(map[string]json.RawMessage, len(d.Extra)+len(knownKeys))
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range d.Extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// UnmarshalJSON decodes a snapshot over the default shape. Keys absent from
// the snapshot keep their default values.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	doc := Default()
	if err := json.Unmarshal(data, (*documentJSON)(&doc)); err != nil {
		return err
	}
	doc.Extra = nil
	for k, v := range raw {
		if knownKeys[k] {
			continue
		}
		if doc.Extra == nil {
			doc.Extra = make(map[string]json.RawMessage)
		}
		doc.Extra[k] = v
	}
	doc.Backfill()

	*d = doc
	return nil
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := *d
	c.Skills = append([]string{}, d.Skills...)
	c.Education = append([]EducationEntry{}, d.Education...)
	c.Experience = make([]ExperienceEntry, len(d.Experience))
	for i, e := range d.Experience {
		e.Bullets = append([]string{}, e.Bullets...)
		c.Experience[i] = e
	}
	c.AdditionalFields = cloneStrings(d.AdditionalFields)
	c.OptionalSections = cloneStrings(d.OptionalSections)
	if d.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(d.Extra))
		for k, v := range d.Extra {
			c.Extra[k] = append(json.RawMessage{}, v...)
		}
	}
	return &c
}

func cloneStrings(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Field returns the value of a scalar contact field.
func (d *Document) Field(name string) (string, error) {
	p, err := d.fieldPtr(name)
	if err != nil {
		return "", err
	}
	return *p, nil
}

// SetField writes a scalar contact field.
func (d *Document) SetField(name, value string) error {
	p, err := d.fieldPtr(name)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

func (d *Document) fieldPtr(name string) (*string, error) {
	switch name {
	case FieldName:
		return &d.Name, nil
	case FieldTitle:
		return &d.Title, nil
	case FieldEmail:
		return &d.Email, nil
	case FieldPhone:
		return &d.Phone, nil
	case FieldLocation:
		return &d.Location, nil
	case FieldWebsite:
		return &d.Website, nil
	case FieldLinkedIn:
		return &d.LinkedIn, nil
	case FieldGitHub:
		return &d.GitHub, nil
	case FieldSummary:
		return &d.Summary, nil
	case FieldPhoto:
		return &d.Photo, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// SetTheme switches the presentation variant.
func (d *Document) SetTheme(t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, t)
	}
	d.Theme = t
	return nil
}

// AddSkill appends a trimmed tag. Blank input is ignored and reported as false.
// Duplicates are allowed.
func (d *Document) AddSkill(raw string) bool {
	tag := strings.TrimSpace(raw)
	if tag == "" {
		return false
	}
	d.Skills = append(d.Skills, tag)
	return true
}

// RemoveSkill removes the tag at index. An out-of-range index is a no-op so a
// repeated removal of the same position never fails.
func (d *Document) RemoveSkill(index int) bool {
	if index < 0 || index >= len(d.Skills) {
		return false
	}
	d.Skills = append(d.Skills[:index], d.Skills[index+1:]...)
	return true
}

// AddEducationEntry appends a blank education entry with a fresh id and returns it.
func (d *Document) AddEducationEntry() EducationEntry {
	entry := EducationEntry{ID: newID()}
	d.Education = append(d.Education, entry)
	return entry
}

// AddExperienceEntry appends a blank experience entry with a fresh id and returns it.
func (d *Document) AddExperienceEntry() ExperienceEntry {
	entry := ExperienceEntry{ID: newID(), Bullets: []string{}}
	d.Experience = append(d.Experience, entry)
	return entry
}

// RemoveEducationEntry deletes the entry with the given id. Absent ids are a no-op.
func (d *Document) RemoveEducationEntry(id string) bool {
	for i := range d.Education {
		if d.Education[i].ID == id {
			d.Education = append(d.Education[:i], d.Education[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveExperienceEntry deletes the entry with the given id. Absent ids are a no-op.
func (d *Document) RemoveExperienceEntry(id string) bool {
	for i := range d.Experience {
		if d.Experience[i].ID == id {
			d.Experience = append(d.Experience[:i], d.Experience[i+1:]...)
			return true
		}
	}
	return false
}

// SetEducationField writes one key of an education entry. It reports whether
// the entry exists; a removed entry is not an error.
func (d *Document) SetEducationField(id, key, value string) (bool, error) {
	for i := range d.Education {
		if d.Education[i].ID != id {
			continue
		}
		e := &d.Education[i]
		switch key {
		case "school":
			e.School = value
		case "degree":
			e.Degree = value
		case "start":
			e.Start = value
		case "end":
			e.End = value
		case "location":
			e.Location = value
		case "details":
			e.Details = value
		default:
			return true, fmt.Errorf("%w: education.%s", ErrUnknownField, key)
		}
		return true, nil
	}
	return false, nil
}

// SetExperienceField writes one key of an experience entry. The "bullets" key
// takes the raw multi-line text and stores the normalized lines.
func (d *Document) SetExperienceField(id, key, value string) (bool, error) {
	for i := range d.Experience {
		if d.Experience[i].ID != id {
			continue
		}
		e := &d.Experience[i]
		switch key {
		case "role":
			e.Role = value
		case "company":
			e.Company = value
		case "start":
			e.Start = value
		case "end":
			e.End = value
		case "location":
			e.Location = value
		case "bullets":
			e.Bullets = SplitBullets(value)
		default:
			return true, fmt.Errorf("%w: experience.%s", ErrUnknownField, key)
		}
		return true, nil
	}
	return false, nil
}

// SplitBullets turns one-per-line text into normalized bullets.
func SplitBullets(text string) []string {
	return NormalizeBullets(strings.Split(text, "\n"))
}

// NormalizeBullets trims every bullet and drops the blank ones.
func NormalizeBullets(bullets []string) []string {
	out := make([]string, 0, len(bullets))
	for _, b := range bullets {
		b = strings.TrimSpace(b)
		if b != "" {
			out = append(out, b)
		}
	}
	return out
}

func newID() string {
	return uuid.NewString()
}
