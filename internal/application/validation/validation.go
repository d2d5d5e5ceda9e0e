// Package validation checks service inputs with go-playground/validator and
// turns failures into a VALIDATION_FAILED domain error.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/erp/pos/internal/domain/shared"
	"github.com/go-playground/validator/v10"
)

// ErrValidationFailed is the sentinel for any input validation failure
var ErrValidationFailed = shared.NewDomainError("VALIDATION_FAILED", "Input validation failed")

// Detail is one failed field
type Detail struct {
	Field   string
	Message string
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Use JSON tag names for field names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates s and returns nil or a VALIDATION_FAILED domain error
// naming every failed field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	details := Details(err)
	if len(details) == 0 {
		return shared.NewDomainError(ErrValidationFailed.Code, ErrValidationFailed.Message+": "+err.Error())
	}

	parts := make([]string, len(details))
	for i, d := range details {
		parts[i] = d.Field + ": " + d.Message
	}
	return shared.NewDomainError(ErrValidationFailed.Code, ErrValidationFailed.Message+": "+strings.Join(parts, "; "))
}

// Details extracts per-field messages from a validator error
func Details(err error) []Detail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make([]Detail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, Detail{
			Field:   e.Field(),
			Message: message(e),
		})
	}
	return details
}

// message returns a human-readable validation message
func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	default:
		return "Invalid value"
	}
}
