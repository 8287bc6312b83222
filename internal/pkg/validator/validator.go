package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Tag category validation (fixed classification axes)
	validate.RegisterValidation("tagcategory", func(fl validator.FieldLevel) bool {
		category := fl.Field().String()
		validCategories := []string{"medium", "movement", "region", "subject", "theme"}
		for _, c := range validCategories {
			if category == c {
				return true
			}
		}
		return false
	})

	// Dimension fields accept numerics-as-strings or empty
	validate.RegisterValidation("dimension", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		if v == "" {
			return true
		}
		for _, r := range v {
			if (r < '0' || r > '9') && r != '.' {
				return false
			}
		}
		return true
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "url":
			errors[field] = "Invalid URL format"
		case "tagcategory":
			errors[field] = "Invalid tag category. Must be: medium, movement, region, subject, or theme"
		case "dimension":
			errors[field] = "Dimensions must be numeric or empty"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
