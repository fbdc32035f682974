package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report violations with the names clients send (json or query keys)
	validate.RegisterTagNameFunc(fieldName)
}

// FieldViolation describes a single failed constraint
type FieldViolation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError is the structured rejection of a request schema.
// A value that produced a ValidationError must not be used.
type ValidationError struct {
	Message    string
	Violations []FieldViolation
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Message)
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, "; "))
}

// NewFieldError creates a ValidationError for a single path
func NewFieldError(path, message string) *ValidationError {
	return &ValidationError{
		Message:    "Validation failed",
		Violations: []FieldViolation{{Path: path, Message: message}},
	}
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewValidationError(validationErrors)
		}
		return err
	}
	return nil
}

// NewValidationError creates a ValidationError from validator.ValidationErrors
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	violations := make([]FieldViolation, 0, len(errs))
	for _, err := range errs {
		path := violationPath(err)
		field := err.Field()

		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "email":
			message = fmt.Sprintf("%s must be a valid email", field)
		case "uuid":
			message = fmt.Sprintf("%s must be a valid UUID", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s", field, err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", field, err.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", field, err.Param())
		case "gte":
			message = fmt.Sprintf("%s must be greater than or equal to %s", field, err.Param())
		case "lt":
			message = fmt.Sprintf("%s must be less than %s", field, err.Param())
		case "lte":
			message = fmt.Sprintf("%s must be less than or equal to %s", field, err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", field, err.Param())
		default:
			message = fmt.Sprintf("%s validation failed on '%s' tag", field, err.Tag())
		}

		violations = append(violations, FieldViolation{Path: path, Message: message})
	}

	return &ValidationError{
		Message:    "Validation failed",
		Violations: violations,
	}
}

// violationPath drops the root struct name from the validator namespace,
// so "CreateQuestionRequest.title" becomes "title".
func violationPath(err validator.FieldError) string {
	ns := err.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return err.Field()
}

// fieldName resolves the client-facing name of a struct field
func fieldName(fld reflect.StructField) string {
	for _, key := range []string{"json", "query"} {
		name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
		if name == "-" {
			return "-"
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}
