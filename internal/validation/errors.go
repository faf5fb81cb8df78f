package validation

import (
	"fmt"
	"strings"
)

// FieldsError reports the fields that failed validation.
type FieldsError struct {
	Failed []Result
}

func (e *FieldsError) Error() string {
	ids := make([]string, 0, len(e.Failed))
	for _, r := range e.Failed {
		ids = append(ids, r.ID)
	}
	return fmt.Sprintf("validation found %d invalid field(s): %s", len(e.Failed), strings.Join(ids, ", "))
}

// Err returns a *FieldsError listing the failed results, or nil when every
// result passed.
func Err(results []Result) error {
	var failed []Result
	for _, r := range results {
		if !r.Valid() {
			failed = append(failed, r)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &FieldsError{Failed: failed}
}
