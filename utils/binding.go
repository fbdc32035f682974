package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
)

// DecodeJSON decodes a JSON document into a new T, fills `default` tags for
// fields left empty, and validates the result. Unknown fields are ignored.
// On failure the zero T is returned together with a *ValidationError.
func DecodeJSON[T any](r io.Reader) (T, error) {
	var zero T
	var v T

	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return zero, decodeError(err)
	}

	if err := bindDefaults(&v); err != nil {
		return zero, err
	}

	if err := ValidateStruct(&v); err != nil {
		return zero, err
	}
	return v, nil
}

// BindQuery coerces query parameters into a new T using `query` tags,
// applies `default` tags for absent parameters, and validates the result.
// Coercion happens before validation, so "3" is checked as the integer 3.
// A parameter that is present but empty is coerced like any other value.
func BindQuery[T any](values url.Values) (T, error) {
	var zero T
	var v T

	rv := reflect.ValueOf(&v).Elem()
	if rv.Kind() != reflect.Struct {
		return zero, fmt.Errorf("query schema must be a struct, got %s", rv.Kind())
	}

	var violations []FieldViolation
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name := sf.Tag.Get("query")
		if name == "" || name == "-" || !sf.IsExported() {
			continue
		}

		raw, ok := sf.Tag.Lookup("default")
		if values.Has(name) {
			raw, ok = values.Get(name), true
		}
		if !ok {
			continue
		}

		if err := setField(rv.Field(i), raw); err != nil {
			violations = append(violations, FieldViolation{
				Path:    name,
				Message: fmt.Sprintf("%s must be %s", name, kindName(sf.Type.Kind())),
			})
		}
	}

	if len(violations) > 0 {
		return zero, &ValidationError{Message: "Validation failed", Violations: violations}
	}

	if err := ValidateStruct(&v); err != nil {
		return zero, err
	}
	return v, nil
}

// bindDefaults fills zero-valued fields that carry a `default` tag
func bindDefaults(v interface{}) error {
	rv := reflect.ValueOf(v).Elem()
	if rv.Kind() != reflect.Struct {
		return nil
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		def, ok := sf.Tag.Lookup("default")
		if !ok || !sf.IsExported() || !rv.Field(i).IsZero() {
			continue
		}
		if err := setField(rv.Field(i), def); err != nil {
			return fmt.Errorf("invalid default for %s: %w", sf.Name, err)
		}
	}
	return nil
}

// setField parses raw into a primitive struct field
func setField(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}

// decodeError converts a JSON decoding failure into a ValidationError
func decodeError(err error) *ValidationError {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var sizeErr *http.MaxBytesError

	switch {
	case errors.As(err, &sizeErr):
		return NewFieldError("body", fmt.Sprintf("request body must not exceed %d bytes", sizeErr.Limit))
	case errors.Is(err, io.EOF):
		return NewFieldError("body", "request body is required")
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return NewFieldError("body", "request body must be a JSON object")
		}
		return NewFieldError(typeErr.Field, fmt.Sprintf("%s must be %s", typeErr.Field, kindName(typeErr.Type.Kind())))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return NewFieldError("body", "request body must be valid JSON")
	default:
		return NewFieldError("body", "request body could not be decoded")
	}
}

func kindName(k reflect.Kind) string {
	switch k {
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	default:
		return "a valid value"
	}
}
