package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/aldisetiawan/go-user-address-api/pkg/apperrors"
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers alias tags for common validations.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterAlias("pwd", "min=6")  // password minimum length
		v.RegisterAlias("phone", "e164") // phone number alias
	}
}

// ToFieldErrors converts binding/validation failures into the per-field error
// list carried by error envelopes. All violations are aggregated, not just the
// first one.
func ToFieldErrors(err error) []apperrors.FieldError {
	if err == nil {
		return nil
	}

	// Malformed JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return []apperrors.FieldError{{Field: "payload", Errors: []string{"invalid json"}}}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		byField := map[string]*apperrors.FieldError{}
		order := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			field := fe.Field()
			fieldErr, ok := byField[field]
			if !ok {
				fieldErr = &apperrors.FieldError{Field: field, Value: fe.Value()}
				byField[field] = fieldErr
				order = append(order, field)
			}
			fieldErr.Errors = append(fieldErr.Errors, formatFieldError(fe))
		}
		out := make([]apperrors.FieldError, 0, len(order))
		for _, f := range order {
			out = append(out, *byField[f])
		}
		return out
	}

	return []apperrors.FieldError{{Field: "payload", Errors: []string{"invalid payload"}}}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "e164", "phone":
		return "must be a valid phone number"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "min":
		if isNumberKind(kind) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(kind) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "boolean":
		return "must be a boolean value"
	case "pwd":
		return "must be at least 6 characters long"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
