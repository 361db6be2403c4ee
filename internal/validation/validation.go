// Package validation holds the input rules shared by handlers and services
// and a preconfigured go-playground validator.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var emailPattern = regexp.MustCompile("^[A-Za-z0-9_!#$%&'*+/=?`{|}~^.-]+@[A-Za-z0-9.-]+$")

// Prices have at most 5 digits, 2 of them after the decimal point.
var maxPrice = decimal.NewFromInt(1000)

// IsValidEmail reports whether email matches the accepted account email pattern.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPrice reports whether d fits a decimal(5,2) column.
func IsValidPrice(d decimal.Decimal) bool {
	return d.Equal(d.Round(2)) && d.Abs().LessThan(maxPrice)
}

// New returns a validator with the account_email and price tags registered.
// Field names in errors are the JSON names.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("account_email", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && IsValidPrice(d)
	})
	return v
}

// FieldErrors flattens validator errors into a field -> message map.
func FieldErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"body": err.Error()}
	}
	messages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		messages[e.Field()] = message(e)
	}
	return messages
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", e.Param())
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", e.Param())
		}
		return fmt.Sprintf("Ensure this field has at least %s items.", e.Param())
	case "account_email":
		return "Enter a valid email address."
	case "price":
		return "Ensure there are no more than 5 digits in total and no more than 2 decimal places."
	default:
		return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
}
