// Package validation checks contact payloads before they are written to the store.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gitlab.com/dirk.krummacker/contacts-api/internal/model"
)

// RequiredFieldsMessage is reported to clients whenever a contact payload is incomplete.
const RequiredFieldsMessage = "All fields are required: firstName, lastName, email, favoriteColor, birthday"

// Violation names a single field that did not pass validation.
type Violation struct {
	Field string
	Rule  string
}

// Result is the outcome of validating a payload. OK is true if and only if Violations is
// empty.
type Result struct {
	OK         bool
	Violations []Violation
}

// Fields returns the names of all violated fields in declaration order.
func (r Result) Fields() []string {
	fields := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

var validate = newValidator()

// newValidator builds a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateContact checks that every descriptive field of the contact is present. An empty
// string counts as missing, the same as an absent key or an explicit JSON null.
func ValidateContact(input *model.ContactInput) Result {
	if input == nil {
		input = &model.ContactInput{}
	}
	err := validate.Struct(input)
	if err == nil {
		return Result{OK: true}
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return Result{Violations: []Violation{{Field: "", Rule: err.Error()}}}
	}
	result := Result{}
	for _, fe := range validationErrors {
		result.Violations = append(result.Violations, Violation{Field: fe.Field(), Rule: fe.Tag()})
	}
	return result
}
