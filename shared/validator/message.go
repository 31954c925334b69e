package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var templates = map[string]string{
	"required": "{field} is required",
	"email":    "{field} must be a valid email address",
	"uuid":     "{field} must be a valid uuid",
	"url":      "{field} must be a valid url",
	"boolean":  "{field} must be true or false",
	"oneof":    "{field} must be one of {param}",
	"min":      "{field} must be greater than or equal to {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"gt":       "{field} must be greater than {param}",
	"max":      "{field} must be less than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"gtfield":  "{field} must be after {param}",
	"nefield":  "{field} must differ from {param}",
	"date":     "{field} must be a date formatted as YYYY-MM-DD",
	"role":     "{field} must be traveler or agent",
}

// message renders the first validation failure that has a template. Errors
// without one fall back to the validator's own text.
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	for _, fieldErr := range fieldErrors {
		if text, ok := describe(fieldErr); ok {
			return text
		}
	}

	return fieldErrors.Error()
}

func describe(fieldErr val.FieldError) (string, bool) {
	template, ok := templates[fieldErr.Tag()]
	if !ok {
		return "", false
	}

	return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(template), true
}
