// Package validate runs `validate` struct tags through go-playground/validator
// and flattens the result into a field → message map keyed by JSON names.
//
//	type Input struct {
//	    Email string `json:"email" validate:"required,email"`
//	    Price float64 `json:"price" validate:"gte=0"`
//	}
//	errs := validate.Struct(in) // {"email": "The email field is required."}
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
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
	})
	return v
}

// Struct validates s. An empty map means s is valid.
func Struct(s interface{}) map[string]string {
	errs := make(map[string]string)

	err := engine().Struct(s)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_"] = err.Error()
		return errs
	}

	for _, fe := range verrs {
		key := fieldPath(fe.Namespace())
		if _, seen := errs[key]; !seen {
			errs[key] = message(key, fe)
		}
	}
	return errs
}

// HasErrors reports whether errs holds any failure.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// fieldPath drops the root struct name: "createMenuRequest.items[0].price"
// becomes "items[0].price".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "url", "http_url":
		return fmt.Sprintf("The %s must be a valid URL.", field)
	case "min":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("The %s must have at least %s entries.", field, fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s may not be greater than %s.", field, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s must be greater than or equal to %s.", field, fe.Param())
	case "lte":
		return fmt.Sprintf("The %s must be less than or equal to %s.", field, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid (%s).", field, fe.Tag())
	}
}
