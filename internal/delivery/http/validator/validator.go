// Package validator adapts go-playground/validator to Echo's Validator
// interface.
package validator

import (
	domainerrors "dispatch/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps a shared validator instance for request structs.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates the request validator.
func New() *CustomValidator {
	return &CustomValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate runs struct validation and converts failures into the
// application error taxonomy.
func (v *CustomValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
