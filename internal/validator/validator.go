package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the underlying struct validator with the service's custom
// rules registered.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with all domain rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	registerDomainRules(v)
	return &Validator{validate: v}
}

// ValidateStruct validates a struct and converts tag failures to
// ValidationErrors.
func (v *Validator) ValidateStruct(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidationError represents a single field validation failure.
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

// ToValidationErrors converts go-playground validation errors to the
// service's error shape.
func ToValidationErrors(err error) ValidationErrors {
	var out ValidationErrors
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "_", Message: err.Error()}}
	}
	for _, fe := range validationErrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: messageForTag(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return out
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "office_day":
		return "must be a weekday identifier (monday..friday)"
	case "interest_tag":
		return "is not a known interest"
	case "activity_tag":
		return "is not a known activity"
	case "pulse_role":
		return "must be one of employee, manager, hr, office_manager"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed rule %q", fe.Tag())
	}
}
