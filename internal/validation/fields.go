package validation

// Field pairs a value with the rule it must satisfy. ID identifies the field
// for the error display.
type Field struct {
	ID    string
	Value string
	Rule  Rule
}

// Result is the outcome of validating one Field.
type Result struct {
	ID      string `json:"id"`
	Rule    Rule   `json:"rule"`
	Message string `json:"message,omitempty"`
}

// Valid reports whether the field passed.
func (r Result) Valid() bool {
	return r.Message == ""
}

// Annotator shows or clears a field-level error message. An empty message
// clears the error.
type Annotator interface {
	SetFieldError(fieldID, message string)
}

// AnnotatorFunc adapts a function to Annotator.
type AnnotatorFunc func(fieldID, message string)

func (f AnnotatorFunc) SetFieldError(fieldID, message string) { f(fieldID, message) }

// ValidateFields checks every field, annotates each one (clearing errors on
// fields that now pass) and reports whether all of them passed. A nil
// annotator skips the annotation step.
func ValidateFields(fields []Field, annotator Annotator) ([]Result, bool) {
	results := make([]Result, 0, len(fields))
	valid := true
	for _, f := range fields {
		msg := Check(f.Rule, f.Value)
		if annotator != nil {
			annotator.SetFieldError(f.ID, msg)
		}
		if msg != "" {
			valid = false
		}
		results = append(results, Result{ID: f.ID, Rule: f.Rule, Message: msg})
	}
	return results, valid
}
