//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsTotal(t *testing.T) {
	doc := Default()

	assert.NotNil(t, doc.Skills)
	assert.NotNil(t, doc.Education)
	assert.NotNil(t, doc.Experience)
	assert.Equal(t, ThemeModern, doc.Theme)
	assert.Empty(t, doc.Name)
	assert.Nil(t, doc.AdditionalFields)
	assert.Nil(t, doc.OptionalSections)
}

func TestAddEducationEntry_UniqueIDs(t *testing.T) {
	doc := NewDocument()

	first := doc.AddEducationEntry()
	second := doc.AddEducationEntry()

	require.Len(t, doc.Education, 2)
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, EducationEntry{ID: first.ID}, doc.Education[0])
}

func TestAddExperienceEntry_HasEmptyBullets(t *testing.T) {
	doc := NewDocument()

	entry := doc.AddExperienceEntry()

	require.Len(t, doc.Experience, 1)
	assert.NotNil(t, entry.Bullets)
	assert.Empty(t, entry.Bullets)
}

func TestRemoveEntry_AbsentIDIsNoop(t *testing.T) {
	doc := NewDocument()
	edu := doc.AddEducationEntry()
	exp := doc.AddExperienceEntry()

	assert.True(t, doc.RemoveEducationEntry(edu.ID))
	assert.False(t, doc.RemoveEducationEntry(edu.ID))
	assert.True(t, doc.RemoveExperienceEntry(exp.ID))
	assert.False(t, doc.RemoveExperienceEntry("missing"))
	assert.Empty(t, doc.Education)
	assert.Empty(t, doc.Experience)
}

func TestRemoveSkill(t *testing.T) {
	doc := NewDocument()
	doc.Skills = []string{"Go", "Rust", "C++"}

	assert.True(t, doc.RemoveSkill(1))
	assert.Equal(t, []string{"Go", "C++"}, doc.Skills)

	assert.False(t, doc.RemoveSkill(5))
	assert.False(t, doc.RemoveSkill(-1))
	assert.Equal(t, []string{"Go", "C++"}, doc.Skills)
}

func TestAddSkill_TrimsAndRejectsBlank(t *testing.T) {
	doc := NewDocument()

	assert.True(t, doc.AddSkill("  Go "))
	assert.False(t, doc.AddSkill("   "))
	assert.True(t, doc.AddSkill("Go"))

	assert.Equal(t, []string{"Go", "Go"}, doc.Skills)
}

func TestSetField_UnknownField(t *testing.T) {
	doc := NewDocument()

	require.NoError(t, doc.SetField(FieldName, "Ann Lee"))
	assert.Equal(t, "Ann Lee", doc.Name)

	err := doc.SetField("postCode", "12345")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSetTheme(t *testing.T) {
	doc := NewDocument()

	require.NoError(t, doc.SetTheme(ThemeCompact))
	assert.Equal(t, ThemeCompact, doc.Theme)

	assert.ErrorIs(t, doc.SetTheme("retro"), ErrInvalidTheme)
	assert.Equal(t, ThemeCompact, doc.Theme)
}

func TestSetExperienceField_Bullets(t *testing.T) {
	doc := NewDocument()
	entry := doc.AddExperienceEntry()

	found, err := doc.SetExperienceField(entry.ID, "bullets", "  Shipped v1 \n\n\n  \nLed team\n")
	require.NoError(t, err)
	assert.True(t, found)

	assert.Equal(t, []string{"Shipped v1", "Led team"}, doc.Experience[0].Bullets)
}

func TestSetEducationField_MissingEntry(t *testing.T) {
	doc := NewDocument()

	found, err := doc.SetEducationField("gone", "school", "MIT")
	assert.NoError(t, err)
	assert.False(t, found)

	entry := doc.AddEducationEntry()
	found, err = doc.SetEducationField(entry.ID, "gpa", "4.0")
	assert.True(t, found)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestUnmarshalJSON_BackfillsMissingFields(t *testing.T) {
	var doc Document
	err := json.Unmarshal([]byte(`{"name":"Ann","skills":null,"theme":"retro"}`), &doc)
	require.NoError(t, err)

	assert.Equal(t, "Ann", doc.Name)
	assert.Equal(t, []string{}, doc.Skills)
	assert.Equal(t, []EducationEntry{}, doc.Education)
	assert.Equal(t, DefaultTheme, doc.Theme)
}

func TestUnmarshalJSON_RepairsEntryIDsAndBullets(t *testing.T) {
	input := `{
		"education": [{"school":"MIT"},{"id":"dup","school":"CMU"},{"id":"dup","school":"UCL"}],
		"experience": [{"id":"x1","role":"Dev","bullets":["  a ", "", "b"]}]
	}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(input), &doc))

	require.Len(t, doc.Education, 3)
	ids := map[string]bool{}
	for _, e := range doc.Education {
		assert.NotEmpty(t, e.ID)
		ids[e.ID] = true
	}
	assert.Len(t, ids, 3)
	assert.Equal(t, "dup", doc.Education[1].ID)
	assert.Equal(t, []string{"a", "b"}, doc.Experience[0].Bullets)
}

func TestJSON_PreservesUnknownKeys(t *testing.T) {
	input := `{"name":"Ann","postCode":"12345","useAsHeadline":true}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(input), &doc))
	require.Contains(t, doc.Extra, "postCode")

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"postCode":"12345"`)
	assert.Contains(t, string(out), `"useAsHeadline":true`)
	assert.Contains(t, string(out), `"name":"Ann"`)
}

func TestJSON_RoundTrip(t *testing.T) {
	doc := NewDocument()
	doc.Name = "Ann Lee"
	doc.Email = "a@b.co"
	doc.Photo = "data:image/png;base64,AAAA"
	doc.Skills = []string{"Go", "Go", "<b>"}
	edu := doc.AddEducationEntry()
	_, _ = doc.SetEducationField(edu.ID, "school", "MIT")
	exp := doc.AddExperienceEntry()
	_, _ = doc.SetExperienceField(exp.ID, "bullets", "one\ntwo")
	require.NoError(t, doc.SetAdditionalField("nationality", "NZ"))
	require.NoError(t, doc.SetOptionalSection("courses", "Distributed systems"))

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var restored Document
	require.NoError(t, json.Unmarshal(data, &restored))

	if diff := cmp.Diff(doc, &restored); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestClone_IsDeep(t *testing.T) {
	doc := NewDocument()
	doc.Skills = []string{"Go"}
	exp := doc.AddExperienceEntry()
	_, _ = doc.SetExperienceField(exp.ID, "bullets", "a")
	require.NoError(t, doc.SetOptionalSection("profile", "hi"))

	c := doc.Clone()
	c.Skills[0] = "Rust"
	c.Experience[0].Bullets[0] = "z"
	c.OptionalSections["profile"] = "bye"

	assert.Equal(t, "Go", doc.Skills[0])
	assert.Equal(t, "a", doc.Experience[0].Bullets[0])
	assert.Equal(t, "hi", doc.OptionalSections["profile"])
}

func TestResetToDefault(t *testing.T) {
	doc := NewDocument()
	doc.Name = "Ann"
	doc.AddEducationEntry()
	doc.Extra = map[string]json.RawMessage{"x": json.RawMessage(`1`)}

	doc.ResetToDefault()

	assert.Equal(t, Default(), *doc)
}

func TestAdditionalFieldsAndSections_RejectUnknownKinds(t *testing.T) {
	doc := NewDocument()

	assert.ErrorIs(t, doc.SetAdditionalField("shoe-size", "42"), ErrUnknownField)
	assert.ErrorIs(t, doc.SetOptionalSection("hobbies", "chess"), ErrUnknownField)

	require.NoError(t, doc.SetAdditionalField("gender", "F"))
	doc.RemoveAdditionalField("gender")
	doc.RemoveAdditionalField("gender")
	assert.Empty(t, doc.AdditionalFields)
}
