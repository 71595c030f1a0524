package validators

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to echo's Validator interface.
type Validator struct {
	cli *validator.Validate
}

// NewValidator initializes and returns a new Validator.
func NewValidator() *Validator {
	return &Validator{
		cli: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate validates the bound request struct and converts field errors
// into a 400 response.
func (v *Validator) Validate(i interface{}) error {
	if err := v.cli.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
