package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/types"
)

func TestCheckExport_Blocked(t *testing.T) {
	h := newHarness(t, rendering.VariantFull)

	status, patches := h.session.CheckExport()

	assert.False(t, status.Ready)
	assert.Equal(t, ExportBlockedMessage, status.Message)
	require.Len(t, patches, 3)
	for _, p := range patches {
		assert.Equal(t, OpText, p.Op)
		assert.NotEmpty(t, p.Value)
	}
}

func TestCheckExport_NeedsHistory(t *testing.T) {
	doc := types.NewDocument()
	doc.Name = "Ann Lee"
	doc.Email = "a@b.co"
	doc.Phone = "+1 2345678"

	status := CheckExport(doc, nil)
	assert.False(t, status.Ready)
	for _, f := range status.Fields {
		assert.True(t, f.Valid(), f.ID)
	}

	doc.AddExperienceEntry()
	status = CheckExport(doc, nil)
	assert.True(t, status.Ready)
	assert.Empty(t, status.Message)
}

func TestCheckExport_InvalidFieldBlocks(t *testing.T) {
	doc := types.NewDocument()
	doc.Name = "Ann Lee"
	doc.Email = "not-an-email"
	doc.Phone = "+1 2345678"
	doc.AddEducationEntry()

	status := CheckExport(doc, nil)

	assert.False(t, status.Ready)
	assert.Equal(t, "Enter a valid email", status.Fields[1].Message)
}
