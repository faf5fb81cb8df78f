// Package rendering projects a resume document into editable form rows and a
// read-only preview.
package rendering

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/resume-editor/internal/types"
)

// Variant selects how much of the document the preview shows.
type Variant string

const (
	// VariantFull renders every field the document carries.
	VariantFull Variant = "full"
	// VariantMinimal renders the name, email, phone, summary and the three
	// collections only.
	VariantMinimal Variant = "minimal"
)

// ParseVariant converts a configuration value into a Variant. Empty means full.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case "", VariantFull:
		return VariantFull, nil
	case VariantMinimal:
		return VariantMinimal, nil
	}
	return "", fmt.Errorf("unknown render variant %q (expected %q or %q)", s, VariantFull, VariantMinimal)
}

// Preview block names. Each block is rendered and patched independently.
const (
	BlockContact    = "contact"
	BlockSummary    = "summary"
	BlockSkills     = "skills"
	BlockEducation  = "education"
	BlockExperience = "experience"
	BlockSections   = "sections"
)

// Blocks lists the preview blocks of a variant in page order.
func Blocks(v Variant) []string {
	if v == VariantMinimal {
		return []string{BlockContact, BlockSummary, BlockSkills, BlockEducation, BlockExperience}
	}
	return []string{BlockContact, BlockSummary, BlockSkills, BlockEducation, BlockExperience, BlockSections}
}

// Placeholder text shown when the corresponding data is empty.
const (
	PlaceholderName        = "Your Name"
	PlaceholderTitle       = "Professional Title"
	PlaceholderSummary     = "A brief professional summary highlighting your experience, skills, and career goals."
	PlaceholderSkills      = "Add skills in the form"
	PlaceholderDegree      = "Degree Name"
	PlaceholderInstitution = "Institution Name"
	PlaceholderDates       = "Start Date - End Date"
	PlaceholderRole        = "Job Title"
	PlaceholderCompany     = "Company Name"
	PlaceholderBullet      = "Responsibility or achievement"
)

// LabeledValue is one visible line of the contact block.
type LabeledValue struct {
	Key   string
	Label string
	Value string
}

// ContactBlock is the header of the preview.
type ContactBlock struct {
	Name      string
	ShowTitle bool
	Title     string
	Items     []LabeledValue
	Extras    []LabeledValue
	PhotoURL  string
}

// TextBlock is a single paragraph that may be a placeholder.
type TextBlock struct {
	Text        string
	Placeholder bool
}

// SkillChip is one skill tag. Index is the position used for removal.
type SkillChip struct {
	Index int
	Label string
}

// SkillsBlock is the preview skill list.
type SkillsBlock struct {
	Chips       []SkillChip
	Placeholder string
}

// EducationItem is one education entry as shown in the preview.
type EducationItem struct {
	ID          string
	Degree      string
	School      string
	Dates       string
	Details     string
	Placeholder bool
}

// ExperienceItem is one experience entry as shown in the preview.
type ExperienceItem struct {
	ID          string
	Role        string
	Company     string
	Dates       string
	Bullets     []string
	Placeholder bool
}

// SectionItem is one non-blank optional section.
type SectionItem struct {
	Key     string
	Heading string
	Text    string
}

// Preview is the read-only view model of the whole document.
type Preview struct {
	Variant    Variant
	Theme      types.Theme
	Contact    ContactBlock
	Summary    TextBlock
	Skills     SkillsBlock
	Education  []EducationItem
	Experience []ExperienceItem
	Sections   []SectionItem
}

// EducationRow is the editable form row of an education entry.
type EducationRow struct {
	ID       string
	School   string
	Degree   string
	Start    string
	End      string
	Location string
	Details  string
}

// ExperienceRow is the editable form row of an experience entry. Bullets are
// shown one per line.
type ExperienceRow struct {
	ID          string
	Role        string
	Company     string
	Start       string
	End         string
	Location    string
	BulletsText string
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

// dateRange joins the non-empty ends of a period.
func dateRange(start, end string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{start, end} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " – ")
}

// BuildPreview computes the preview view model. It never mutates doc.
func BuildPreview(doc *types.Document, v Variant) *Preview {
	p := &Preview{
		Variant:    v,
		Theme:      doc.Theme,
		Contact:    buildContact(doc, v),
		Summary:    TextBlock{Text: orPlaceholder(doc.Summary, PlaceholderSummary), Placeholder: strings.TrimSpace(doc.Summary) == ""},
		Skills:     SkillsBlock{Chips: BuildSkillChips(doc)},
		Education:  buildEducationItems(doc),
		Experience: buildExperienceItems(doc),
	}
	if len(p.Skills.Chips) == 0 {
		p.Skills.Placeholder = PlaceholderSkills
	}
	if v != VariantMinimal {
		p.Sections = buildSections(doc)
	}
	return p
}

func buildContact(doc *types.Document, v Variant) ContactBlock {
	c := ContactBlock{Name: orPlaceholder(doc.Name, PlaceholderName)}

	items := []LabeledValue{
		{Key: types.FieldEmail, Label: "Email", Value: doc.Email},
		{Key: types.FieldPhone, Label: "Phone", Value: doc.Phone},
	}
	if v != VariantMinimal {
		c.ShowTitle = true
		c.Title = orPlaceholder(doc.Title, PlaceholderTitle)
		c.PhotoURL = doc.Photo
		items = append(items,
			LabeledValue{Key: types.FieldLocation, Label: "Location", Value: doc.Location},
			LabeledValue{Key: types.FieldWebsite, Label: "Website", Value: doc.Website},
			LabeledValue{Key: types.FieldLinkedIn, Label: "LinkedIn", Value: doc.LinkedIn},
			LabeledValue{Key: types.FieldGitHub, Label: "GitHub", Value: doc.GitHub},
		)
		for _, kind := range types.AdditionalFieldKinds {
			value, ok := doc.AdditionalFields[kind.Key]
			if !ok || strings.TrimSpace(value) == "" {
				continue
			}
			c.Extras = append(c.Extras, LabeledValue{Key: kind.Key, Label: kind.Label, Value: value})
		}
	}
	for _, item := range items {
		if strings.TrimSpace(item.Value) != "" {
			c.Items = append(c.Items, item)
		}
	}
	return c
}

// BuildSkillChips returns one chip per skill in display order.
func BuildSkillChips(doc *types.Document) []SkillChip {
	chips := make([]SkillChip, 0, len(doc.Skills))
	for i, s := range doc.Skills {
		chips = append(chips, SkillChip{Index: i, Label: s})
	}
	return chips
}

func buildEducationItems(doc *types.Document) []EducationItem {
	if len(doc.Education) == 0 {
		return []EducationItem{{
			Degree:      PlaceholderDegree,
			School:      PlaceholderInstitution,
			Dates:       PlaceholderDates,
			Placeholder: true,
		}}
	}
	items := make([]EducationItem, 0, len(doc.Education))
	for _, e := range doc.Education {
		items = append(items, EducationItem{
			ID:      e.ID,
			Degree:  orPlaceholder(e.Degree, PlaceholderDegree),
			School:  orPlaceholder(e.School, PlaceholderInstitution),
			Dates:   orPlaceholder(dateRange(e.Start, e.End), PlaceholderDates),
			Details: strings.TrimSpace(e.Details),
		})
	}
	return items
}

func buildExperienceItems(doc *types.Document) []ExperienceItem {
	if len(doc.Experience) == 0 {
		return []ExperienceItem{{
			Role:        PlaceholderRole,
			Company:     PlaceholderCompany,
			Dates:       PlaceholderDates,
			Bullets:     []string{PlaceholderBullet},
			Placeholder: true,
		}}
	}
	items := make([]ExperienceItem, 0, len(doc.Experience))
	for _, e := range doc.Experience {
		bullets := types.NormalizeBullets(e.Bullets)
		if len(bullets) == 0 {
			bullets = []string{PlaceholderBullet}
		}
		items = append(items, ExperienceItem{
			ID:      e.ID,
			Role:    orPlaceholder(e.Role, PlaceholderRole),
			Company: orPlaceholder(e.Company, PlaceholderCompany),
			Dates:   orPlaceholder(dateRange(e.Start, e.End), PlaceholderDates),
			Bullets: bullets,
		})
	}
	return items
}

func buildSections(doc *types.Document) []SectionItem {
	if len(doc.OptionalSections) == 0 {
		return nil
	}
	title := cases.Title(language.English)
	var out []SectionItem
	for _, kind := range types.OptionalSectionKinds {
		text := strings.TrimSpace(doc.OptionalSections[kind.Key])
		if text == "" {
			continue
		}
		out = append(out, SectionItem{Key: kind.Key, Heading: title.String(kind.Label), Text: text})
	}
	return out
}

// NewEducationRow converts an entry to its editable row.
func NewEducationRow(e types.EducationEntry) EducationRow {
	return EducationRow(e)
}

// NewExperienceRow converts an entry to its editable row.
func NewExperienceRow(e types.ExperienceEntry) ExperienceRow {
	return ExperienceRow{
		ID:          e.ID,
		Role:        e.Role,
		Company:     e.Company,
		Start:       e.Start,
		End:         e.End,
		Location:    e.Location,
		BulletsText: strings.Join(e.Bullets, "\n"),
	}
}

// BuildEducationRows returns the editable rows of the education collection,
// keyed by entry id.
func BuildEducationRows(doc *types.Document) []EducationRow {
	rows := make([]EducationRow, 0, len(doc.Education))
	for _, e := range doc.Education {
		rows = append(rows, NewEducationRow(e))
	}
	return rows
}

// BuildExperienceRows returns the editable rows of the experience collection,
// keyed by entry id.
func BuildExperienceRows(doc *types.Document) []ExperienceRow {
	rows := make([]ExperienceRow, 0, len(doc.Experience))
	for _, e := range doc.Experience {
		rows = append(rows, NewExperienceRow(e))
	}
	return rows
}
