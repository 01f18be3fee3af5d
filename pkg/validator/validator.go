package validator

import (
	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Var validates a single value against a tag expression, e.g. "required,max=64".
func (v *Validator) Var(value any, tag string) error {
	return v.validate.Var(value, tag)
}
