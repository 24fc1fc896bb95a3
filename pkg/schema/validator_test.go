package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type address struct {
	Street string `json:"street" validate:"required"`
}

type person struct {
	Name    string   `json:"name" validate:"required"`
	Email   string   `json:"email" validate:"required,email"`
	Age     int      `json:"age" validate:"gte=0,lte=150"`
	Tags    []string `json:"tags" validate:"required,min=1"`
	Home    address  `json:"home"`
}

func TestValidate_Valid(t *testing.T) {
	p := person{Name: "A", Email: "a@example.com", Age: 30, Tags: []string{"x"}, Home: address{Street: "Main"}}
	assert.NoError(t, Validate("person", p))
}

func TestValidate_FieldDetails(t *testing.T) {
	err := Validate("person", &person{Email: "nope", Age: 200})
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "person", verr.Schema)
	assert.True(t, errors.Is(err, ErrValidation))

	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Rule
	}
	assert.Equal(t, map[string]string{
		"name":        "required",
		"email":       "email",
		"age":         "lte",
		"tags":        "required",
		"home.street": "required",
	}, fields)
	assert.Contains(t, err.Error(), "invalid person: ")
	assert.Contains(t, err.Error(), "home.street is required")
}

func TestValidate_NonStruct(t *testing.T) {
	err := Validate("number", 42)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewError(t *testing.T) {
	err := NewError("WorkflowInput", "action", "oneof", "action must be known")
	assert.EqualError(t, err, "invalid WorkflowInput: action must be known")
	assert.ErrorIs(t, err, ErrValidation)
}
