package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name   string `json:"name" validate:"required,min=3"`
	Email  string `json:"reply_email" validate:"omitempty,email"`
	Hidden string `json:"-" validate:"max=2"`
	Count  int    `validate:"max=5"`
}

func TestFieldNames_UsesJSONNames(t *testing.T) {
	err := New().Struct(sample{Name: "ab", Email: "nope", Hidden: "xyz", Count: 9})

	assert.ElementsMatch(t, []string{"name", "reply_email", "Hidden", "Count"}, FieldNames(err))
}

func TestFieldNames_Required(t *testing.T) {
	err := New().Struct(sample{})
	assert.Equal(t, []string{"name"}, FieldNames(err))
}

func TestFieldNames_NonValidationError(t *testing.T) {
	assert.Nil(t, FieldNames(errors.New("boom")))
	assert.Nil(t, FieldNames(nil))
}
