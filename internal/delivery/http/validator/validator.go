// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	domainerrors "anha/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

// CustomValidator wraps a shared validator instance for Echo.
type CustomValidator struct {
	validate *playground.Validate
}

// New creates the validator Echo calls for every bound request body.
func New() *CustomValidator {
	return &CustomValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate checks struct tags and converts failures into the application's
// validation error so the error handler renders them uniformly.
func (v *CustomValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
