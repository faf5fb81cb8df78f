package completion

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-editor/internal/types"
)

func TestCompute_NewDocumentIsZero(t *testing.T) {
	assert.Equal(t, 0, Compute(types.NewDocument()))
}

func TestCompute_ContactFields(t *testing.T) {
	doc := types.NewDocument()
	doc.Name = "Ann Lee"
	doc.Email = "a@b.co"
	doc.Phone = "+1 2345678"

	// 3 of 7
	assert.Equal(t, 43, Compute(doc))

	reqs := Checklist(doc)
	satisfied := map[string]bool{}
	for _, r := range reqs {
		satisfied[r.Key] = r.Satisfied
	}
	assert.True(t, satisfied["name"])
	assert.True(t, satisfied["email"])
	assert.True(t, satisfied["phone"])
	assert.False(t, satisfied["title"])
}

func TestCompute_BlankStringsDoNotCount(t *testing.T) {
	doc := types.NewDocument()
	doc.Name = "   "
	doc.Summary = "\n\t"

	assert.Equal(t, 0, Compute(doc))
}

func TestCompute_HistoryRequirement(t *testing.T) {
	doc := types.NewDocument()
	doc.AddEducationEntry()
	assert.Equal(t, 14, Compute(doc))

	doc = types.NewDocument()
	doc.AddExperienceEntry()
	doc.AddEducationEntry()
	assert.Equal(t, 14, Compute(doc))
}

func TestCompute_Full(t *testing.T) {
	doc := types.NewDocument()
	doc.Name = "Ann Lee"
	doc.Title = "Engineer"
	doc.Email = "a@b.co"
	doc.Phone = "+1 2345678"
	doc.Summary = "Builds things"
	doc.Skills = []string{"Go"}
	doc.AddExperienceEntry()

	assert.Equal(t, 100, Compute(doc))
}

func TestCompute_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("completion equals round(100*satisfied/7) and stays in range", prop.ForAll(
		func(name, title, email, phone, summary string, skills []string, education, experience uint8) bool {
			doc := types.NewDocument()
			doc.Name, doc.Title, doc.Email, doc.Phone, doc.Summary = name, title, email, phone, summary
			doc.Skills = append(doc.Skills, skills...)
			for i := 0; i < int(education%3); i++ {
				doc.AddEducationEntry()
			}
			for i := 0; i < int(experience%3); i++ {
				doc.AddExperienceEntry()
			}

			got := Compute(doc)
			if got != Compute(doc) {
				return false
			}

			satisfied := 0
			for _, r := range Checklist(doc) {
				if r.Satisfied {
					satisfied++
				}
			}
			want := int(math.Round(100 * float64(satisfied) / 7))
			return got == want && got >= 0 && got <= 100
		},
		gen.OneConstOf("", " ", "Ann"),
		gen.OneConstOf("", "Engineer"),
		gen.OneConstOf("", "a@b.co"),
		gen.OneConstOf("", "\t", "+1 2345678"),
		gen.AlphaString(),
		gen.SliceOf(gen.AlphaString()),
		gen.UInt8(),
		gen.UInt8(),
	))

	properties.TestingRun(t)
}
