// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// PartCategories is the fixed category enumeration requests and listings
// must use.
var PartCategories = []string{
	"engine",
	"transmission",
	"suspension",
	"brakes",
	"electrical",
	"body",
	"tyres",
	"accessories",
}

func init() {
	validate = validator.New()
	validate.RegisterValidation("part_category", validatePartCategory)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePartCategory(fl validator.FieldLevel) bool {
	category := strings.ToLower(fl.Field().String())
	for _, known := range PartCategories {
		if category == known {
			return true
		}
	}
	return false
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "part_category":
		return e.Field() + " must be one of: " + strings.Join(PartCategories, ", ")
	default:
		return e.Field() + " is invalid"
	}
}
