package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single field violation.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// ToValidationErrors converts go-playground errors to our shape.
func ToValidationErrors(err error) ValidationErrors {
	var errs ValidationErrors
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrs {
			errs = append(errs, ValidationError{
				Field:   fe.Field(),
				Message: errorMessage(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
		return errs
	}
	return ValidationErrors{{Message: err.Error()}}
}

func errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "verification_code":
		return "must be a 4-digit code"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

var codePattern = regexp.MustCompile(`^[0-9]{4}$`)

// Validator wraps go-playground validation with the account rules.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	// Issued codes are always 4 numeric digits.
	_ = validate.RegisterValidation("verification_code", func(fl validator.FieldLevel) bool {
		return codePattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: validate}
}

// Validate validates a struct against its tags.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateVar validates a single value against a tag expression.
func (v *Validator) ValidateVar(field string, value interface{}, tag string) ValidationErrors {
	if err := v.validate.Var(value, tag); err != nil {
		errs := ToValidationErrors(err)
		for i := range errs {
			errs[i].Field = field
		}
		return errs
	}
	return nil
}
