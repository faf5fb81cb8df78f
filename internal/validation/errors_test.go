package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErr_NilWhenAllValid(t *testing.T) {
	assert.NoError(t, Err([]Result{{ID: "name", Rule: RuleName}}))
	assert.NoError(t, Err(nil))
}

func TestErr_ListsFailedFields(t *testing.T) {
	results, ok := ValidateFields([]Field{
		{ID: "name", Value: "Ann Lee", Rule: RuleName},
		{ID: "email", Value: "nope", Rule: RuleEmail},
		{ID: "phone", Value: "", Rule: RulePhone},
	}, nil)
	require.False(t, ok)

	err := Err(results)

	var fieldsErr *FieldsError
	require.True(t, errors.As(err, &fieldsErr))
	assert.Len(t, fieldsErr.Failed, 2)
	assert.Equal(t, "validation found 2 invalid field(s): email, phone", err.Error())
}
