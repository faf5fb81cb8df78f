package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/resume-editor/internal/types"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Renderer turns view models into HTML fragments. All user text goes through
// html/template contextual escaping. A Renderer is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"photo": PhotoMarkup,
	}).ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, &TemplateError{
			Name:    "templates/*.gohtml",
			Message: "failed to parse templates",
			Cause:   err,
		}
	}
	return &Renderer{tmpl: tmpl}, nil
}

// MustNewRenderer is NewRenderer for package initialization and tests.
func MustNewRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var b strings.Builder
	if err := r.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", &TemplateError{
			Name:    name,
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return b.String(), nil
}

// BlockElementID returns the id of the element wrapping a preview block.
func BlockElementID(block string) string {
	return "pv-" + block
}

// RenderBlock renders one preview block, wrapper element included.
func (r *Renderer) RenderBlock(block string, p *Preview) (string, error) {
	switch block {
	case BlockContact, BlockSummary, BlockSkills, BlockEducation, BlockExperience, BlockSections:
	default:
		return "", &RenderError{Message: fmt.Sprintf("unknown preview block %q", block)}
	}
	return r.execute("block-"+block, p)
}

// RenderPreview renders the whole preview article.
func (r *Renderer) RenderPreview(p *Preview) (string, error) {
	return r.execute("preview", p)
}

// RenderPreviewDocument renders the preview as a standalone HTML document,
// the input of the PDF export.
func (r *Renderer) RenderPreviewDocument(p *Preview) (string, error) {
	return r.execute("preview-document", p)
}

// EducationRowID returns the element id of an education form row.
func EducationRowID(id string) string {
	return "edu-" + id
}

// ExperienceRowID returns the element id of an experience form row.
func ExperienceRowID(id string) string {
	return "exp-" + id
}

// RenderEducationRow renders one editable education row.
func (r *Renderer) RenderEducationRow(row EducationRow) (string, error) {
	return r.execute("education-row", row)
}

// RenderExperienceRow renders one editable experience row.
func (r *Renderer) RenderExperienceRow(row ExperienceRow) (string, error) {
	return r.execute("experience-row", row)
}

// SkillChipsElementID is the id of the editable skill tag list.
const SkillChipsElementID = "skills-tags"

// RenderSkillChips renders the editable skill tag list.
func (r *Renderer) RenderSkillChips(chips []SkillChip) (string, error) {
	return r.execute("skill-chips", chips)
}

// FormField is one labeled input of the editor page.
type FormField struct {
	Key       string
	Label     string
	Value     string
	Rule      string
	Multiline bool
}

// ThemeOption is one entry of the theme selector.
type ThemeOption struct {
	Value    types.Theme
	Selected bool
}

// Page is the view model of the full editor page.
type Page struct {
	Preview          *Preview
	Progress         int
	Contact          []FormField
	Chips            []SkillChip
	EducationRows    []EducationRow
	ExperienceRows   []ExperienceRow
	AdditionalFields []FormField
	Sections         []FormField
	Themes           []ThemeOption
}

var contactLabels = map[string]string{
	types.FieldName:     "Full name",
	types.FieldTitle:    "Professional title",
	types.FieldEmail:    "Email",
	types.FieldPhone:    "Phone",
	types.FieldLocation: "Location",
	types.FieldWebsite:  "Website",
	types.FieldLinkedIn: "LinkedIn",
	types.FieldGitHub:   "GitHub",
	types.FieldSummary:  "Summary",
}

var minimalFields = map[string]bool{
	types.FieldName: true, types.FieldEmail: true, types.FieldPhone: true, types.FieldSummary: true,
}

// validatedFields maps form inputs to the rule checked on blur.
var validatedFields = map[string]string{
	types.FieldName:  "name",
	types.FieldEmail: "email",
	types.FieldPhone: "phone",
}

// BuildPage computes the editor page view model.
func BuildPage(doc *types.Document, v Variant, progress int) *Page {
	page := &Page{
		Preview:        BuildPreview(doc, v),
		Progress:       progress,
		Chips:          BuildSkillChips(doc),
		EducationRows:  BuildEducationRows(doc),
		ExperienceRows: BuildExperienceRows(doc),
	}
	for _, key := range types.ContactFields {
		if v == VariantMinimal && !minimalFields[key] {
			continue
		}
		value, _ := doc.Field(key)
		page.Contact = append(page.Contact, FormField{
			Key:       key,
			Label:     contactLabels[key],
			Value:     value,
			Rule:      validatedFields[key],
			Multiline: key == types.FieldSummary,
		})
	}
	if v != VariantMinimal {
		for _, kind := range types.AdditionalFieldKinds {
			page.AdditionalFields = append(page.AdditionalFields, FormField{
				Key: kind.Key, Label: kind.Label, Value: doc.AdditionalFields[kind.Key],
			})
		}
		for _, kind := range types.OptionalSectionKinds {
			page.Sections = append(page.Sections, FormField{
				Key: kind.Key, Label: kind.Label, Value: doc.OptionalSections[kind.Key], Multiline: true,
			})
		}
	}
	for _, t := range types.Themes {
		page.Themes = append(page.Themes, ThemeOption{Value: t, Selected: t == doc.Theme})
	}
	return page
}

// RenderPage renders the full editor page.
func (r *Renderer) RenderPage(page *Page) (string, error) {
	return r.execute("page", page)
}
