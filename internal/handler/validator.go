package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// RequestValidator adapts go-playground/validator to echo.Validator so
// handlers can call c.Validate on bound request bodies.
type RequestValidator struct {
	v *validator.Validate
}

// NewRequestValidator returns a validator reading `validate` struct tags.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator.
func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}

// passengerMessage picks the message for a failed passenger validation.
// Only a bad or missing email gets the email wording.
func passengerMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.StructField() == "Email" {
				return msgInvalidEmail
			}
		}
	}
	return msgInvalidPassenger
}
