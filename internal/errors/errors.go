package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	InvalidArgument   ErrorCode = "invalid_argument"
	InvalidState      ErrorCode = "invalid_state"
	InsufficientFunds ErrorCode = "insufficient_funds"
	NotFound          ErrorCode = "account_not_found"
	Conflict          ErrorCode = "conflict"
	InvalidOperation  ErrorCode = "invalid_operation"
	InternalError     ErrorCode = "internal_error"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target carries the same code, so predefined errors
// match regardless of message or details.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !stderrors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetails returns a copy carrying details, leaving the receiver untouched
// so predefined errors stay immutable.
func (e *AppError) WithDetails(details string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// HTTPStatus maps the error code to the status returned by the API.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case InvalidArgument, InvalidOperation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case InvalidState, InsufficientFunds:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf returns the code of the first AppError in err's chain, or
// InternalError for anything else.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return InternalError
}

// Internal wraps a storage or infrastructure failure.
func Internal(message string, err error) *AppError {
	appErr := NewAppError(InternalError, message)
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

// Predefined errors for common cases
var (
	ErrInvalidRequestBody     = NewAppError(InvalidArgument, "invalid request body")
	ErrNameRequired           = NewAppError(InvalidArgument, "name is required")
	ErrDocumentRequired       = NewAppError(InvalidArgument, "document is required")
	ErrInvalidAmount          = NewAppError(InvalidArgument, "amount must be positive")
	ErrAmountPrecision        = NewAppError(InvalidArgument, "amount must have at most two decimal places")
	ErrAccountInactive        = NewAppError(InvalidState, "account is inactive")
	ErrAlreadyInactive        = NewAppError(InvalidState, "account is already inactive")
	ErrBothMustBeActive       = NewAppError(InvalidState, "both accounts must be active to transfer")
	ErrInsufficientFunds      = NewAppError(InsufficientFunds, "insufficient funds")
	ErrAccountNotFound        = NewAppError(NotFound, "account not found")
	ErrNotFoundOrInactive     = NewAppError(NotFound, "account not found or already inactive")
	ErrDuplicateAccount       = NewAppError(Conflict, "an account already exists for this document")
	ErrConcurrentUpdate       = NewAppError(Conflict, "account was modified by another operation")
	ErrSameAccount            = NewAppError(InvalidOperation, "cannot transfer to the same account")
	ErrCannotBeginTransaction = NewAppError(InternalError, "cannot begin transaction")
)
