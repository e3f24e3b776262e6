package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator engine. Field names in error output come
// from the json tag so they match the wire format.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError describes a single violated constraint on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the structured failure produced by the validation
// layer: one entry per violated field.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	messages := make([]string, 0, len(v))
	for _, fe := range v {
		messages = append(messages, fe.Message)
	}
	return strings.Join(messages, ", ")
}

// Details renders the error list as a field->message map suitable for the
// details section of an API error response.
func (v ValidationErrors) Details() map[string]interface{} {
	details := make(map[string]interface{}, len(v))
	for _, fe := range v {
		details[fe.Field] = fe.Message
	}
	return details
}

// runStruct evaluates the validate tags on the given request struct and
// converts the engine's output into ValidationErrors.
func runStruct(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError only happens on non-struct input
		return ValidationErrors{{Field: "body", Message: "invalid request body"}}
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

// messageFor maps a violated constraint tag to a human-readable message.
func messageFor(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// fieldLabel capitalizes a json field name for use in a message.
func fieldLabel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

// ParseUserID coerces a path parameter into a positive integer user ID.
func ParseUserID(raw string) (uint, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, ValidationErrors{{Field: "id", Message: "ID must be a positive integer"}}
	}
	return uint(id), nil
}
