package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one offending request field, surfaced verbatim to the caller.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the full per-field list so the error handler can
// render `{message, errors}` rather than a single opaque string.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + " " + f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make([]FieldError, 0, len(ve))
			for _, fe := range ve {
				fields = append(fields, fieldError(fe))
			}
			return &ValidationError{Fields: fields}
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) FieldError {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return FieldError{Field: field, Message: "is required"}
	case "email":
		return FieldError{Field: field, Message: "must be a valid email"}
	case "gt":
		return FieldError{Field: field, Message: fmt.Sprintf("must be greater than %s", fe.Param())}
	case "min":
		if fe.Kind() == reflect.Slice {
			return FieldError{Field: field, Message: fmt.Sprintf("must contain at least %s items", fe.Param())}
		}
		return FieldError{Field: field, Message: fmt.Sprintf("must be at least %s characters", fe.Param())}
	case "oneof":
		return FieldError{Field: field, Message: fmt.Sprintf("must be one of: %s", fe.Param())}
	default:
		return FieldError{Field: field, Message: fmt.Sprintf("failed validation (%s)", fe.Tag())}
	}
}
