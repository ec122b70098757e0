package validation

import (
	"fmt"
	"strings"
	"time"

	errors "github.com/frahmantamala/orgtree/internal"
)

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return &v.fields[len(v.fields)-1]
}

func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				return errors.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s must not be empty", fv.FieldName), errors.ErrCodeInvalidName)
			}
		case int64:
			if v == 0 {
				return errors.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeValidationFailed)
			}
		case time.Time:
			if v.IsZero() {
				return errors.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s must be provided", fv.FieldName), errors.ErrCodeInvalidDate)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MinInt(min int64, code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(int64); ok && v < min {
			message := fmt.Sprintf("%s must be at least %d", fv.FieldName, min)
			return errors.NewValidationFieldError(fv.FieldName, message, code)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok && len([]rune(v)) > max {
			message := fmt.Sprintf("%s must not exceed %d characters", fv.FieldName, max)
			return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeInvalidName)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *errors.AppError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			err := validator(field.Value)
			if err == nil {
				continue
			}
			if details, ok := err.Details.(errors.ValidationErrors); ok {
				validationErrors = append(validationErrors, details.Errors...)
				continue
			}
			validationErrors = append(validationErrors, errors.ValidationError{
				Field:   field.FieldName,
				Message: err.Message,
				Code:    string(err.Code),
			})
		}
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: validationErrors})
	}

	return nil
}

// ValidateRole checks a role record before it is stored.
func ValidateRole(name string, baselineSalary int64) *errors.AppError {
	validator := NewValidator()
	validator.Field("name", name).
		Required().
		MaxLength(255)
	validator.Field("baseline_salary", baselineSalary).
		MinInt(0, errors.ErrCodeInvalidSalary)
	return validator.Validate()
}

// ValidateEmployee checks an employee record against the baseline salary of
// the role it references.
func ValidateEmployee(fullName string, roleID int64, roleBaseline int64, salary int64, employmentDate time.Time) *errors.AppError {
	validator := NewValidator()
	validator.Field("full_name", fullName).
		Required().
		MaxLength(255)
	validator.Field("role_id", roleID).
		Required()
	validator.Field("salary", salary).
		MinInt(0, errors.ErrCodeInvalidSalary).
		Custom(func(value interface{}) *errors.AppError {
			if v, ok := value.(int64); ok && v >= 0 && v < roleBaseline {
				message := fmt.Sprintf("salary must be at least the role baseline salary (%d)", roleBaseline)
				return errors.NewValidationFieldError("salary", message, errors.ErrCodeSalaryBelowRole)
			}
			return nil
		})
	validator.Field("employment_date", employmentDate).
		Required()
	return validator.Validate()
}
