package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrRateLimited        = errors.New("rate limited")
)

// Stable error codes returned in the "error" key
const (
	CodeValidation                  = "VALIDATION_ERROR"
	CodeDuplicateEmail              = "DUPLICATE_EMAIL"
	CodeDuplicateRegistrationNumber = "DUPLICATE_REGISTRATION_NUMBER"
	CodeDuplicateIndication         = "DUPLICATE_INDICATION"
	CodeInvalidCredentials          = "INVALID_CREDENTIALS"
	CodeUnauthenticated             = "UNAUTHENTICATED"
	CodeInvalidToken                = "INVALID_TOKEN"
	CodeSessionExpired              = "SESSION_EXPIRED"
	CodeAccountDisabled             = "ACCOUNT_DISABLED"
	CodeForbidden                   = "FORBIDDEN"
	CodeNotFound                    = "NOT_FOUND"
	CodeRateLimited                 = "RATE_LIMITED"
	CodeInternalError               = "INTERNAL_ERROR"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails returns a copy carrying details
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AsAppError unwraps err into an AppError when one is in the chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Validation reports malformed input; details usually maps field to rule
func Validation(message string, details any) *AppError {
	e := NewAppError(http.StatusBadRequest, CodeValidation, message, ErrInvalidInput)
	e.Details = details
	return e
}

// FieldError is a Validation error naming a single offending field
func FieldError(field, message string) *AppError {
	return Validation(field+": "+message, map[string]string{field: message})
}

func DuplicateEmail() *AppError {
	return NewAppError(http.StatusConflict, CodeDuplicateEmail, "email already registered", ErrAlreadyExists)
}

func DuplicateRegistrationNumber() *AppError {
	return NewAppError(http.StatusConflict, CodeDuplicateRegistrationNumber, "registration number already registered", ErrAlreadyExists)
}

func DuplicateIndication() *AppError {
	return NewAppError(http.StatusConflict, CodeDuplicateIndication, "professional already indicated", ErrAlreadyExists)
}

// InvalidCredentials is shared by unknown email and wrong password
func InvalidCredentials() *AppError {
	return NewAppError(http.StatusUnauthorized, CodeInvalidCredentials, "invalid email or password", ErrInvalidCredentials)
}

func Unauthenticated() *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthenticated, "authentication required", ErrUnauthorized)
}

func InvalidToken() *AppError {
	return NewAppError(http.StatusUnauthorized, CodeInvalidToken, "invalid token", ErrInvalidToken)
}

func SessionExpired() *AppError {
	return NewAppError(http.StatusUnauthorized, CodeSessionExpired, "session expired, please log in again", ErrTokenExpired)
}

func AccountDisabled() *AppError {
	return NewAppError(http.StatusUnauthorized, CodeAccountDisabled, "account disabled", ErrAccountDisabled)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func RateLimited(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, CodeRateLimited, message, ErrRateLimited)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}
