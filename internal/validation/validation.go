// Package validation holds the registration rules shared by the form
// controller and the API so both sides reject the same input.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	tenDigits  = regexp.MustCompile(`^\d{10}$`)
)

// New returns a validator that reports fields by their json names and knows
// the emailshape, phone10 and notblank tags.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// Registration of these tags cannot fail: names are non-empty and funcs non-nil.
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// IsEmail reports whether s has the local@domain.tld shape.
func IsEmail(s string) bool {
	return emailShape.MatchString(strings.TrimSpace(s))
}

// IsPhone reports whether s is exactly ten digits.
func IsPhone(s string) bool {
	return tenDigits.MatchString(s)
}

// Details renders validation failures as human-readable strings. Every string
// names the offending json field so clients can route it to an input.
func Details(errs validator.ValidationErrors) []string {
	details := make([]string, 0, len(errs))
	for _, fe := range errs {
		details = append(details, detail(fe))
	}
	return details
}

func detail(fe validator.FieldError) string {
	prefix := ""
	if path := fieldPath(fe); strings.Contains(path, ".") {
		prefix = path[:strings.LastIndex(path, ".")] + ": "
	}
	field := fe.Field()

	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s'%s' is required.", prefix, field)
	case "emailshape":
		if field == "lead_email" {
			return fmt.Sprintf("'%s' is not a valid email address.", field)
		}
		return fmt.Sprintf("%s'%s' is not valid.", prefix, field)
	case "phone10":
		return fmt.Sprintf("%s'%s' must be a 10-digit number.", prefix, field)
	case "min", "max":
		if field == "members" {
			return "Additional team members cannot exceed 4."
		}
		return fmt.Sprintf("%s'%s' must be between 1 and 5.", prefix, field)
	default:
		return fmt.Sprintf("%s'%s' is invalid.", prefix, field)
	}
}

// fieldPath drops the top-level struct name from the namespace,
// e.g. "RegistrationPayload.members[0].member_name" -> "members[0].member_name".
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return path
}
