package editor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/types"
)

func TestDispatch_UnknownEvent(t *testing.T) {
	h := newHarness(t, rendering.VariantFull)

	_, err := h.session.Dispatch(context.Background(), Event{Type: "teleport"})

	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestDispatch_UnknownField(t *testing.T) {
	h := newHarness(t, rendering.VariantFull)

	_, err := h.session.Dispatch(context.Background(), Event{Type: EventInput, Field: "postCode", Value: "1"})
	assert.ErrorIs(t, err, types.ErrUnknownField)

	_, err = h.session.Dispatch(context.Background(), Event{Type: EventChange, Field: "postCode", Value: "1"})
	assert.ErrorIs(t, err, types.ErrUnknownField)
	assert.Equal(t, 0, h.sched.Len())
}

func TestInput_RapidEditsCoalesceIntoOneWrite(t *testing.T) {
	h := newHarness(t, rendering.VariantFull)

	for i := 1; i <= 10; i++ {
		patches := h.dispatch(t, Event{Type: EventInput, Field: types.FieldName, Value: fmt.Sprintf("Ann %d", i)})
		assert.Empty(t, patches)
	}
	assert.Empty(t, h.session.Document().Name)
	assert.True(t, h.sched.Pending(inputKeyPrefix+types.FieldName))

	h.session.Flush()

	assert.Equal(t, 1, h.store.writeCount())
	assert.Equal(t, "Ann 10", h.store.lastWrite(t).Name)
	assert.Equal(t, "Ann 10", h.session.Document().Name)

	async := h.surface.Drain()
	contact, ok := findPatch(async, OpReplace, rendering.BlockElementID(rendering.BlockContact))
	require.True(t, ok)
	assert.Equal(t, "Ann 10", patchHTML(t, contact).Find("#resume-name").Text())
	progress, ok := findPatch(async, OpProgress, ProgressTarget)
	require.True(t, ok)
	assert.Equal(t, "14", progress.Value)
}

func TestChange_SupersedesPendingInput(t *testing.T) {
	h := newHarness(t, rendering.VariantFull)
	h.dispatch(t, Event{Type: EventInput, Field: types.FieldTitle, Value: "Engin"})

	patches := h.dispatch(t, Event{Type: EventChange, Field: types.FieldTitle, Value: "Engineer"})

	assert.False(t, h.sched.Pending(inputKeyPrefix+types.FieldTitle))
	contact, ok := findPatch(patches, OpReplace, rendering.BlockElementID(rendering.BlockContact))
	require.True(t, ok)
	assert.Equal(t, "Engineer", patchHTML(t, contact).Find("#resume-title").Text())

	h.session.Flush()
	assert.Equal(t, "Engineer", h.session.Document().Title)
}

func TestChange_SummaryRendersSummaryBlock(t *testing.T) {
	h := newHarness(t, rendering.VariantFull)

	patches := h.dispatch(t, Event{Type: EventChange, Field: types.FieldSummary, Value: "Builds <systems>"})

	require.Len(t, patches, 1)
	assert.Equal(t, rendering.BlockElementID(rendering.BlockSummary), patches[0].Target)
	assert.Equal(t, "Builds <systems>", patchHTML(t, patches[0]).Find("#resume-summary").Text())
}

func TestContactScenario(t *testing.T) {
	h := newHarness(t, rendering.VariantFull)
	values := map[string]string{
		types.FieldName:  "Ann Lee",
		types.FieldEmail: "a@b.co",
		types.FieldPhone: "+1 2345678",
	}

	for field, value := range values {
		h.dispatch(t, Event{Type: EventChange, Field: field, Value: value})
		patches := h.dispatch(t, Event{Type: EventBlur, Field: field, Value: value})
		require.Len(t, patches, 1)
		assert.Equal(t, Patch{Op: OpText, Target: FieldErrorTarget(field)}, patches[0])
	}
	h.session.Flush()

	assert.Equal(t, 43, h.session.Progress())
	saved := h.store.lastWrite(t)
	assert.Equal(t, "Ann Lee", saved.Name)
	assert.Equal(t, "+1 2345678", saved.Phone)
}

func TestBlur_ShowsMessage(t *testing.T) {
	h := newHarness(t, rendering.VariantFull)

	patches := h.dispatch(t, Event{Type: EventBlur, Field: types.FieldEmail, Value: "ann@"})
	require.Len(t, patches, 1)
	assert.Equal(t, "Enter a valid email", patches[0].Value)

	assert.Empty(t, h.dispatch(t, Event{Type: EventBlur, Field: types.FieldSummary, Value: ""}))
}

func TestSkillKey(t *testing.T) {
	h := newHarness(t, rendering.VariantFull)

	assert.Empty(t, h.dispatch(t, Event{Type: EventSkillKey, Key: "Tab", Value: "Go"}))
	assert.Empty(t, h.dispatch(t, Event{Type: EventSkillKey, Key: KeyEnter, Value: "   "}))

	patches := h.dispatch(t, Event{Type: EventSkillKey, Key: KeyComma, Value: "  Go "})

	assert.Equal(t, []string{"Go"}, h.session.Document().Skills)
	clear, ok := findPatch(patches, OpValue, SkillInputTarget)
	require.True(t, ok)
	assert.Empty(t, clear.Value)
	chips, ok := findPatch(patches, OpReplace, rendering.SkillChipsElementID)
	require.True(t, ok)
	assert.Equal(t, 1, patchHTML(t, chips).Find(".chip").Length())
	_, ok = findPatch(patches, OpReplace, rendering.BlockElementID(rendering.BlockSkills))
	assert.True(t, ok)
	progress, ok := findPatch(patches, OpProgress, ProgressTarget)
	require.True(t, ok)
	assert.Equal(t, "14", progress.Value)
	assert.True(t, h.sched.Pending(h.gateway.PersistKey()))
}

func TestSkillRemove_ByIndex(t *testing.T) {
	h := newHarness(t, rendering.VariantFull)
	for _, s := range []string{"Go", "Rust", "C++"} {
		h.dispatch(t, Event{Type: EventSkillKey, Key: KeyEnter, Value: s})
	}

	patches := h.dispatch(t, Event{Type: EventSkillRemove, Index: 1})

	assert.Equal(t, []string{"Go", "C++"}, h.session.Document().Skills)
	block, ok := findPatch(patches, OpReplace, rendering.BlockElementID(rendering.BlockSkills))
	require.True(t, ok)
	assert.Equal(t, 2, patchHTML(t, block).Find(".skill-tag").Length())

	// a second activation of a vanished chip is a no-op
	assert.Empty(t, h.dispatch(t, Event{Type: EventSkillRemove, Index: 2}))
	assert.Equal(t, []string{"Go", "C++"}, h.session.Document().Skills)
}

func TestEducationScenario(t *testing.T) {
	h := newHarness(t, rendering.VariantFull)

	patches := h.dispatch(t, Event{Type: EventEducationAdd})

	doc := h.session.Document()
	require.Len(t, doc.Education, 1)
	id := doc.Education[0].ID
	row, ok := findPatch(patches, OpAppend, educationListTarget)
	require.True(t, ok)
	assert.Equal(t, 1, patchHTML(t, row).Find("#"+rendering.EducationRowID(id)).Length())
	progress, _ := findPatch(patches, OpProgress, ProgressTarget)
	assert.Equal(t, "14", progress.Value)

	patches = h.dispatch(t, Event{Type: EventEducationUpdate, ID: id, Key: "school", Value: "MIT"})
	block, ok := findPatch(patches, OpReplace, rendering.BlockElementID(rendering.BlockEducation))
	require.True(t, ok)
	assert.Equal(t, "MIT", patchHTML(t, block).Find(".institution").Text())

	h.session.Flush()
	assert.Equal(t, 1, h.store.writeCount())
	assert.Equal(t, "MIT", h.store.lastWrite(t).Education[0].School)
}

func TestEducationUpdate_UnknownKeyAndMissingEntry(t *testing.T) {
	h := newHarness(t, rendering.VariantFull)
	h.dispatch(t, Event{Type: EventEducationAdd})
	id := h.session.Document().Education[0].ID

	_, err := h.session.Dispatch(context.Background(), Event{Type: EventEducationUpdate, ID: id, Key: "gpa", Value: "4"})
	assert.ErrorIs(t, err, types.ErrUnknownField)

	assert.Empty(t, h.dispatch(t, Event{Type: EventEducationUpdate, ID: "gone", Key: "school", Value: "MIT"}))
}

func TestEntryRemoval_IsIdempotent(t *testing.T) {
	h := newHarness(t, rendering.VariantFull)
	h.dispatch(t, Event{Type: EventEducationAdd})
	h.dispatch(t, Event{Type: EventExperienceAdd})
	doc := h.session.Document()
	eduID, expID := doc.Education[0].ID, doc.Experience[0].ID

	patches := h.dispatch(t, Event{Type: EventEducationRemove, ID: eduID})
	_, ok := findPatch(patches, OpRemove, rendering.EducationRowID(eduID))
	assert.True(t, ok)
	assert.Empty(t, h.dispatch(t, Event{Type: EventEducationRemove, ID: eduID}))

	patches = h.dispatch(t, Event{Type: EventExperienceRemove, ID: expID})
	block, ok := findPatch(patches, OpReplace, rendering.BlockElementID(rendering.BlockExperience))
	require.True(t, ok)
	assert.Equal(t, rendering.PlaceholderRole, patchHTML(t, block).Find("h4").Text())
	assert.Empty(t, h.dispatch(t, Event{Type: EventExperienceRemove, ID: expID}))

	assert.Equal(t, 0, h.session.Progress())
}

func TestExperienceUpdate_Bullets(t *testing.T) {
	h := newHarness(t, rendering.VariantFull)
	h.dispatch(t, Event{Type: EventExperienceAdd})
	id := h.session.Document().Experience[0].ID

	patches := h.dispatch(t, Event{Type: EventExperienceUpdate, ID: id, Key: "bullets", Value: "Shipped v1\n\n  Led team  \n"})

	assert.Equal(t, []string{"Shipped v1", "Led team"}, h.session.Document().Experience[0].Bullets)
	block, ok := findPatch(patches, OpReplace, rendering.BlockElementID(rendering.BlockExperience))
	require.True(t, ok)
	assert.Equal(t, 2, patchHTML(t, block).Find("li").Length())
}

func TestAdditionalFieldsAndSections(t *testing.T) {
	h := newHarness(t, rendering.VariantFull)

	patches := h.dispatch(t, Event{Type: EventAdditionalSet, Field: "nationality", Value: "NZ"})
	contact, ok := findPatch(patches, OpReplace, rendering.BlockElementID(rendering.BlockContact))
	require.True(t, ok)
	assert.Contains(t, patchHTML(t, contact).Find(".extra").Text(), "NZ")

	_, err := h.session.Dispatch(context.Background(), Event{Type: EventAdditionalSet, Field: "shoe-size", Value: "42"})
	assert.ErrorIs(t, err, types.ErrUnknownField)

	patches = h.dispatch(t, Event{Type: EventSectionSet, Field: "courses", Value: "Compilers"})
	sections, ok := findPatch(patches, OpReplace, rendering.BlockElementID(rendering.BlockSections))
	require.True(t, ok)
	assert.Equal(t, "Courses", patchHTML(t, sections).Find("h3").Text())

	h.dispatch(t, Event{Type: EventAdditionalRemove, Field: "nationality"})
	h.dispatch(t, Event{Type: EventSectionRemove, Field: "courses"})
	doc := h.session.Document()
	assert.Empty(t, doc.AdditionalFields)
	assert.Empty(t, doc.OptionalSections)
}

func TestSectionSet_MinimalVariantHasNoBlock(t *testing.T) {
	h := newHarness(t, rendering.VariantMinimal)

	patches := h.dispatch(t, Event{Type: EventSectionSet, Field: "courses", Value: "Compilers"})

	assert.Empty(t, patches)
	assert.Equal(t, "Compilers", h.session.Document().OptionalSections["courses"])
}

func TestPhoto_StoredVerbatim(t *testing.T) {
	h := newHarness(t, rendering.VariantFull)
	const photo = "data:image/png;base64,iVBORw0KGgo="

	patches := h.dispatch(t, Event{Type: EventPhoto, Value: photo})

	assert.Equal(t, photo, h.session.Document().Photo)
	contact, ok := findPatch(patches, OpReplace, rendering.BlockElementID(rendering.BlockContact))
	require.True(t, ok)
	src, _ := patchHTML(t, contact).Find("#pv-photo img").Attr("src")
	assert.Equal(t, photo, src)
}

func TestTheme(t *testing.T) {
	h := newHarness(t, rendering.VariantFull)

	patches := h.dispatch(t, Event{Type: EventTheme, Value: string(types.ThemeCompact)})

	preview, ok := findPatch(patches, OpReplace, previewTarget)
	require.True(t, ok)
	assert.True(t, patchHTML(t, preview).Find("#resume-preview").HasClass("theme-compact"))
	_, ok = findPatch(patches, OpProgress, ProgressTarget)
	assert.True(t, ok)
	assert.True(t, h.sched.Pending(h.gateway.PersistKey()))

	_, err := h.session.Dispatch(context.Background(), Event{Type: EventTheme, Value: "retro"})
	assert.ErrorIs(t, err, types.ErrInvalidTheme)
	assert.Equal(t, types.ThemeCompact, h.session.Document().Theme)
}
