package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/yakoovad/hackathon-registration/internal/validation"
)

// Validator plugs the shared registration rules into echo.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validation.New()}
}

func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}
