// Package validation holds the request schemas checked before the core
// touches the store. Every violated rule is reported, not only the first.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mcoot/batepapo/internal/model"
)

// ParticipantSchema is the shape of a registration request
type ParticipantSchema struct {
	Name string `json:"name" validate:"required"`
}

// MessageSchema is the shape of a message post
type MessageSchema struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
	Text string `json:"text" validate:"required"`
	Type string `json:"type" validate:"required,oneof=message private_message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Check validates schema and returns a *model.ValidationError listing
// every violation, or nil when the schema is satisfied. Fields named in
// mistyped arrived with a non-string JSON value; each is reported as such
// in place of whatever rule its zero value broke.
func Check(schema any, mistyped ...string) error {
	var fieldErrs validator.ValidationErrors
	if err := validate.Struct(schema); err != nil && !errors.As(err, &fieldErrs) {
		return err
	}
	if len(fieldErrs) == 0 && len(mistyped) == 0 {
		return nil
	}

	messages := make([]string, 0, len(fieldErrs)+len(mistyped))
	reported := make(map[string]bool, len(mistyped))
	for _, fe := range fieldErrs {
		if slices.Contains(mistyped, fe.Field()) {
			messages = append(messages, notAString(fe.Field()))
			reported[fe.Field()] = true
			continue
		}
		messages = append(messages, describe(fe))
	}
	for _, field := range mistyped {
		if !reported[field] {
			messages = append(messages, notAString(field))
		}
	}
	return model.NewValidationError(messages...)
}

// notAString is the violation reported for a field sent with a non-string value
func notAString(field string) string {
	return fmt.Sprintf("%q must be a string", field)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%q must be one of [%s]", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%q failed the %s rule", fe.Field(), fe.Tag())
	}
}
