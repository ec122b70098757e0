package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "VALIDATION_ERROR"
	ErrorTypeConfiguration ErrorType = "CONFIGURATION_ERROR"
	ErrorTypeNotFound      ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized  ErrorType = "UNAUTHORIZED"
	ErrorTypeConflict      ErrorType = "STATE_CONFLICT"
	ErrorTypeInvariant     ErrorType = "INVARIANT_VIOLATION"
	ErrorTypeStructure     ErrorType = "STRUCTURE_ERROR"
	ErrorTypeInternal      ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidName      ErrorCode = "INVALID_NAME"
	ErrCodeInvalidSalary    ErrorCode = "INVALID_SALARY"
	ErrCodeSalaryBelowRole  ErrorCode = "SALARY_BELOW_ROLE_BASELINE"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeInvalidRole      ErrorCode = "INVALID_ROLE"

	ErrCodeInvalidConfig   ErrorCode = "INVALID_CONFIG"
	ErrCodeEmptyRolePool   ErrorCode = "EMPTY_ROLE_POOL"
	ErrCodeEmptyDepartment ErrorCode = "EMPTY_DEPARTMENT_POOL"

	ErrCodePartialTree       ErrorCode = "PARTIAL_DEPARTMENT_TREE"
	ErrCodeEmployeesExist    ErrorCode = "EMPLOYEES_ALREADY_EXIST"
	ErrCodeRolePoolMismatch  ErrorCode = "ROLE_POOL_MISMATCH"
	ErrCodeRoleInUse         ErrorCode = "ROLE_IN_USE"
	ErrCodeTreeCountMismatch ErrorCode = "TREE_COUNT_MISMATCH"
	ErrCodeDuplicateID       ErrorCode = "DUPLICATE_ID"

	ErrCodeDanglingReference ErrorCode = "DANGLING_REFERENCE"
	ErrCodeCycleDetected     ErrorCode = "CYCLE_DETECTED"
	ErrCodeSelfParent        ErrorCode = "SELF_PARENT"

	ErrCodeDepartmentNotFound ErrorCode = "DEPARTMENT_NOT_FOUND"
	ErrCodeRoleNotFound       ErrorCode = "ROLE_NOT_FOUND"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// RecordCounts is attached to state conflicts so an operator can decide whether to reset.
type RecordCounts struct {
	Roles       int64 `json:"roles,omitempty"`
	Departments int64 `json:"departments,omitempty"`
	Employees   int64 `json:"employees,omitempty"`
}

// ReferenceDetails names the record that failed a structural check.
type ReferenceDetails struct {
	ID       int64  `json:"id"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewConfigurationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConfiguration,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewStateConflictError(message string, code ErrorCode, counts RecordCounts) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		Details:    counts,
		StatusCode: http.StatusConflict,
	}
}

func NewInvariantViolationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeInvariant,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

func NewDanglingReferenceError(id, parentID int64) *AppError {
	return &AppError{
		Type:       ErrorTypeStructure,
		Code:       ErrCodeDanglingReference,
		Message:    fmt.Sprintf("department %d references missing parent %d", id, parentID),
		Details:    ReferenceDetails{ID: id, ParentID: &parentID},
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func NewCycleError(id, parentID int64) *AppError {
	return &AppError{
		Type:       ErrorTypeStructure,
		Code:       ErrCodeCycleDetected,
		Message:    fmt.Sprintf("cycle detected in department hierarchy: %d cannot be placed under %d", id, parentID),
		Details:    ReferenceDetails{ID: id, ParentID: &parentID},
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func NewSelfParentError(id int64) *AppError {
	return &AppError{
		Type:       ErrorTypeStructure,
		Code:       ErrCodeSelfParent,
		Message:    fmt.Sprintf("department %d cannot be its own parent", id),
		Details:    ReferenceDetails{ID: id, ParentID: &id},
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrDepartmentNotFound = NewNotFoundError("department not found", ErrCodeDepartmentNotFound)
	ErrRoleNotFound       = NewNotFoundError("role not found", ErrCodeRoleNotFound)

	ErrInvalidCredentials = NewUnauthorizedError("invalid operator credentials", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err, or anything it wraps, is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Code == code
}

// HasType reports whether err, or anything it wraps, is an AppError of the given type.
func HasType(err error, errType ErrorType) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Type == errType
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
