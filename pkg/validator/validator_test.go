package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Title string  `json:"title" validate:"required,min=1"`
	Type  string  `json:"type" validate:"oneof=MOVIE TV_SHOW"`
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=5"`
}

func TestValidateStructSuccess(t *testing.T) {
	payload := testPayload{Title: "Inception", Type: "MOVIE"}
	require.NoError(t, ValidateStruct(payload))
}

func TestValidateStructFailures(t *testing.T) {
	notes := "far too long"
	err := ValidateStruct(testPayload{Type: "PODCAST", Notes: &notes})
	require.Error(t, err)

	vErrs, ok := err.(ValidationErrors)
	require.True(t, ok, "expected ValidationErrors, got %T", err)
	require.Len(t, vErrs, 3)

	byField := map[string]ValidationError{}
	for _, v := range vErrs {
		byField[v.Field] = v
	}
	require.Equal(t, "required", byField["title"].Tag)
	require.Equal(t, "oneof", byField["type"].Tag)
	require.Equal(t, "MOVIE TV_SHOW", byField["type"].Param)
	require.Equal(t, "PODCAST", byField["type"].Value)
	require.Equal(t, "max", byField["notes"].Tag)
	require.Contains(t, vErrs.Error(), "type failed on oneof=MOVIE TV_SHOW")
}

func TestRegisterValidation(t *testing.T) {
	err := RegisterValidation("favorite", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == "favorite"
	})
	require.NoError(t, err)

	type custom struct {
		Value string `validate:"favorite"`
	}

	require.NoError(t, ValidateStruct(custom{Value: "favorite"}))
	require.Error(t, ValidateStruct(custom{Value: "other"}))
}

func TestIssuesErrorAndFields(t *testing.T) {
	issues := Issues{
		{Code: "invalid_type", Path: []string{"title"}, Message: "Required"},
		{Code: "invalid_type", Path: nil, Message: "Expected object, received array"},
		{Code: "too_small", Path: []string{"director"}, Message: "String must contain at least 1 character(s)"},
	}

	require.Equal(t, []string{"title", "director"}, issues.Fields())
	require.Equal(t,
		"title: Required; Expected object, received array; director: String must contain at least 1 character(s)",
		issues.Error(),
	)
	require.Equal(t, "validation failed", Issues{}.Error())
}
