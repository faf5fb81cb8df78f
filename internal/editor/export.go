package editor

import (
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/jonathan/resume-editor/internal/validation"
)

// ExportBlockedMessage is shown when the export precondition fails.
const ExportBlockedMessage = "Please complete the required fields and add at least one Education or Experience entry before exporting."

// ExportStatus is the outcome of the export precondition.
type ExportStatus struct {
	Ready   bool                `json:"ready"`
	Message string              `json:"message,omitempty"`
	Fields  []validation.Result `json:"fields"`
}

// RequiredFields returns the contact fields every export must pass.
func RequiredFields(doc *types.Document) []validation.Field {
	return []validation.Field{
		{ID: types.FieldName, Value: doc.Name, Rule: validation.RuleName},
		{ID: types.FieldEmail, Value: doc.Email, Rule: validation.RuleEmail},
		{ID: types.FieldPhone, Value: doc.Phone, Rule: validation.RulePhone},
	}
}

// CheckExport evaluates the export precondition against doc: the required
// fields are valid and at least one education or experience entry exists.
// Every required field is annotated through annotator, which may be nil.
func CheckExport(doc *types.Document, annotator validation.Annotator) ExportStatus {
	results, valid := validation.ValidateFields(RequiredFields(doc), annotator)
	hasHistory := len(doc.Education) > 0 || len(doc.Experience) > 0
	status := ExportStatus{Ready: valid && hasHistory, Fields: results}
	if !status.Ready {
		status.Message = ExportBlockedMessage
	}
	return status
}

// CheckExport evaluates the export precondition for the session document and
// returns the field error patches alongside the status.
func (s *Session) CheckExport() (ExportStatus, []Patch) {
	annotations := &fieldErrors{}
	status := CheckExport(s.doc, annotations)
	return status, annotations.patches
}
