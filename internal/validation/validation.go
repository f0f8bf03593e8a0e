// Package validation checks request bodies at the HTTP boundary.
//
// Rules live in `validate` struct tags and are enforced by go-playground/validator.
// Failures come back as a list of violations with client-facing messages
// instead of a single error per field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Violation describes one failed rule.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations is returned when a struct fails validation.
type Violations []Violation

func (v Violations) Error() string {
	msgs := make([]string, 0, len(v))
	for _, violation := range v {
		msgs = append(msgs, violation.Message)
	}
	return strings.Join(msgs, "; ")
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("notblank", validators.NotBlank)
		// report JSON names rather than Go field names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Struct validates s and returns nil or the collected violations.
func Struct(s interface{}) Violations {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Violations{{Message: err.Error()}}
	}

	typ := reflect.Indirect(reflect.ValueOf(s)).Type()
	out := make(Violations, 0, len(verrs))
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		// one message per field keeps the response readable
		if seen[fe.Field()] {
			continue
		}
		seen[fe.Field()] = true
		out = append(out, Violation{Field: fe.Field(), Message: message(typ, fe)})
	}
	return out
}

func message(typ reflect.Type, fe validator.FieldError) string {
	label := strings.ToUpper(fe.Field()[:1]) + fe.Field()[1:]
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", label)
	case "gt":
		return fmt.Sprintf("%s must be a positive number", label)
	case "min":
		if isString {
			return lengthMessage(typ, fe, label)
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if isString {
			return lengthMessage(typ, fe, label)
		}
		return fmt.Sprintf("%s must not be greater than %s", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// lengthMessage reads both bounds from the field's tag so min and max failures
// share one message.
func lengthMessage(typ reflect.Type, fe validator.FieldError, label string) string {
	var tag string
	if f, ok := typ.FieldByName(fe.StructField()); ok {
		tag = f.Tag.Get("validate")
	}

	var lo, hi string
	for _, rule := range strings.Split(tag, ",") {
		switch {
		case strings.HasPrefix(rule, "min="):
			lo = strings.TrimPrefix(rule, "min=")
		case strings.HasPrefix(rule, "max="):
			hi = strings.TrimPrefix(rule, "max=")
		}
	}
	if lo != "" && hi != "" {
		return fmt.Sprintf("%s must be between %s and %s characters", label, lo, hi)
	}
	if fe.Tag() == "min" {
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	}
	return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
}
