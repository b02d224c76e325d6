package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/docker-crm/internal/errs"
)

// Validatable is implemented by payload types that know how to validate themselves.
//
// Typical pattern:
//   - declare constraints with validator tags (`validate:"required,max=50"`)
//   - implement Validate() error by calling validation.Struct(req)
//   - return CustomValidationErrors for rules tags cannot express
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance.
//
// Field names in reported errors follow the `json` tag, so clients see
// "email" rather than "Email".
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return Validator().Struct(s)
}

// BindAndValidate binds request data into payload and validates it.
//
// c.Bind fills the struct from path params, query params (GET/DELETE) and
// the body. Both bind and validation failures come back as a 400 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), false, nil, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

// bindErrorMessage extracts the client-facing part of an echo bind error,
// e.g. "Unmarshal type error: expected=int64, got=string, field=id, offset=7".
func bindErrorMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok && msg != "" {
			return msg
		}
		return fmt.Sprint(he.Message)
	}
	return "Invalid request"
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, ce := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Field: "body", Error: err.Error()}}
	}

	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: describeTag(field, fe),
		})
	}

	return "Validation failed", fieldErrors
}

func describeTag(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		// min is a length for strings and a value for numbers.
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	case "email":
		return "must be a valid email address"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", field, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", field, fe.Tag())
	}
}
