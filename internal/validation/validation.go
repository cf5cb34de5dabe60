// Package validation wraps go-playground/validator with field names taken
// from form/json tags, a "date" tag and field-keyed error messages
package validation

import (
	"errors"  // Error inspection
	"reflect" // Struct field tags
	"sort"    // Deterministic field order
	"strings" // String manipulation
	"time"    // Time handling

	"travel_api/internal/domain" // Importing domain models

	"github.com/go-playground/validator/v10" // Struct validation
	"github.com/jinzhu/now"                  // Flexible date parsing
)

// FieldErrors maps a field name to its validation messages
type FieldErrors map[string][]string

// Add appends msg to field
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// First returns the first message of the alphabetically first field
func (e FieldErrors) First() string {
	keys := make([]string, 0, len(e))
	for k, msgs := range e {
		if len(msgs) > 0 {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return e[keys[0]][0]
}

func (e FieldErrors) Error() string { return e.First() }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

// ParseDate accepts any date or date-time jinzhu/now understands and
// truncates it to the UTC day
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	t, err := now.ParseInLocation(time.UTC, s)
	if err != nil {
		return time.Time{}, err
	}
	return domain.TruncateDay(t), nil
}

// Struct validates v and returns nil when it passes. custom overrides the
// message of a field regardless of which rule failed
func Struct(v any, custom map[string]string) FieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	errs := FieldErrors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("body", err.Error())
		return errs
	}
	for _, fe := range verrs {
		if msg, ok := custom[fe.Field()]; ok {
			errs.Add(fe.Field(), msg)
			continue
		}
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return "The " + field + " field is required."
	case "numeric":
		return "The " + field + " field must be a number."
	case "number":
		return "The " + field + " field must be an integer."
	case "date":
		return "The " + field + " field must be a valid date."
	case "email":
		return "The " + field + " field must be a valid email address."
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return "The " + field + " field must be at least " + fe.Param() + " characters."
		}
		return "The " + field + " field must be at least " + fe.Param() + "."
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return "The " + field + " field must not be greater than " + fe.Param() + " characters."
		}
		return "The " + field + " field must not be greater than " + fe.Param() + "."
	case "oneof":
		return "The selected " + field + " is invalid."
	}
	return "The " + field + " field is invalid."
}
