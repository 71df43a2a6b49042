package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const passwordMinLength = 8

// Init configures the global validator used by Gin's binding.
// - Uses form (then JSON) tag names in errors.
// - Registers the strongpwd rule used by the registration form.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(tagName)
		_ = v.RegisterValidation("strongpwd", strongPassword)
		v.RegisterAlias("nonzero", "required") // convenience
	}
}

func tagName(fld reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// strongPassword requires at least 8 characters with a lowercase letter, an uppercase letter and a digit.
func strongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

func IsStrongPassword(p string) bool {
	if len([]rune(p)) < passwordMinLength {
		return false
	}
	var lower, upper, digit bool
	for _, r := range p {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

// ToDetails converts validation/binding errors into a map[field]message suitable for rendering.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	// Fallback
	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		if fe.Kind() == reflect.Bool {
			return "must be accepted"
		}
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + param + " characters long"
	case "max":
		return "must be at most " + param + " characters long"
	case "eqfield":
		return "must match " + param
	case "datetime":
		return "must match date format YYYY-MM-DD"
	case "strongpwd":
		return "must be at least 8 characters with uppercase, lowercase and a number"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}
