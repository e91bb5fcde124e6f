package utils

import (
	"errors"
	"net/http"
)

const (
	CodeNotAuthenticated   = "NOT_AUTHENTICATED"
	CodeNotAuthorized      = "NOT_AUTHORIZED"
	CodeNotFound           = "NOT_FOUND"
	CodeDuplicateName      = "DUPLICATE_NAME"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeValidation         = "VALIDATION_ERROR"
	CodeAlreadyAnswered    = "ALREADY_ANSWERED"
	CodeInternal           = "INTERNAL_ERROR"
)

// Sentinels for errors.Is. Matching compares Code only, so an AppError
// carrying a more specific message still matches its kind.
var (
	ErrNotAuthenticated   = NewAppError(http.StatusUnauthorized, CodeNotAuthenticated, "login required", nil)
	ErrNotAuthorized      = NewAppError(http.StatusForbidden, CodeNotAuthorized, "not allowed", nil)
	ErrNotFound           = NewAppError(http.StatusNotFound, CodeNotFound, "not found", nil)
	ErrDuplicateName      = NewAppError(http.StatusConflict, CodeDuplicateName, "User already exists", nil)
	ErrInvalidCredentials = NewAppError(http.StatusUnauthorized, CodeInvalidCredentials, "invalid credentials", nil)
	ErrBadRequest         = NewAppError(http.StatusBadRequest, CodeValidation, "invalid request", nil)
	ErrAlreadyAnswered    = NewAppError(http.StatusConflict, CodeAlreadyAnswered, "question already answered", nil)
	ErrInternal           = NewAppError(http.StatusInternalServerError, CodeInternal, "internal server error", nil)
)

type AppError struct {
	Status  int
	Code    string
	Message string
	Details interface{}
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func NewAppError(status int, code, message string, details interface{}) *AppError {
	return &AppError{Status: status, Code: code, Message: message, Details: details}
}

// WithMessage copies e with a different human-readable message.
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{Status: e.Status, Code: e.Code, Message: message, Details: e.Details}
}

// AsAppError unwraps err to an AppError, or nil when err is not one.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
