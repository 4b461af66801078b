package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError carries one human-readable message per violated field
// constraint, in the order the schema declares its fields.
type ValidationError struct {
	Messages []string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func newValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// checkStruct runs the tag-declared rules of a schema and translates any
// violations into a ValidationError. It performs no mutation.
func checkStruct(schema any) error {
	err := validate.Struct(schema)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return newValidationError("Invalid request")
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, messageFor(fe.Field(), fe.Tag(), fe.Param()))
	}

	return newValidationError(messages...)
}

// messageFor renders a single field violation the way the API reports it.
func messageFor(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Invalid email address"
	case "min":
		if field == "Password" {
			return fmt.Sprintf("Password must be at least %s characters", param)
		}
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(param, " ", ", "))
	case "number":
		return fmt.Sprintf("%s must be a valid user id", field)
	case "datetime":
		return fmt.Sprintf("%s must be an RFC 3339 timestamp", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
