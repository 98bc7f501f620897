package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/wobblehealth/checkin-api/errors"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()
	return &CustomValidator{v: v}
}

// Validate performs struct validation. Failures come back as AppErrors so
// handlers surface them through the shared {"error": ...} shape.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.v.Struct(i); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	return nil
}
