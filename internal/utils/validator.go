// internal/utils/validator.go
package utils

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

// GetBindingErrors converts an error from gin's JSON binding into
// ValidationErrors. Decoding failures are reported alongside validator
// failures.
func GetBindingErrors(err error) []ValidationError {
	if verrs := GetValidationErrors(err); len(verrs) > 0 {
		return verrs
	}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []ValidationError{{
			Field:   field,
			Tag:     "type",
			Message: field + " must be of type " + typeErr.Type.String(),
		}}
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return []ValidationError{{
			Field:   "body",
			Tag:     "json",
			Message: "Request body must be valid JSON",
		}}
	default:
		return []ValidationError{{
			Field:   "body",
			Tag:     "invalid",
			Message: err.Error(),
		}}
	}
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	default:
		return e.Field() + " is invalid"
	}
}
