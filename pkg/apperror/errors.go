package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Error codes.
const (
	CodeInvalidArgument    = "WLT_001"
	CodeNotFound           = "WLT_002"
	CodeInsufficientFunds  = "WLT_003"
	CodeInvalidCredentials = "AUTH_001"
	CodeUsernameExists     = "AUTH_002"
	CodeInvalidToken       = "AUTH_003"
	CodeRateLimitExceeded  = "RATE_001"
	CodeRequestInProgress  = "IDEM_001"
	CodeKeyReused          = "IDEM_002"
	CodeStoreUnavailable   = "SYS_001"
	CodeTimeout            = "SYS_002"
	CodeInternal           = "SYS_000"
)

// ---- Wallet business rules (WLT) ----

// InvalidArgument reports a request whose shape or values break a business rule.
func InvalidArgument(message string) *AppError {
	return New(CodeInvalidArgument, message, http.StatusBadRequest)
}

// NotFound reports a reference to a wallet that does not exist.
func NotFound(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func ErrWalletNotFound(id int64) *AppError {
	return NotFound(fmt.Sprintf("Wallet with id %d does not exist.", id))
}

func ErrInsufficientFunds() *AppError {
	return New(CodeInsufficientFunds, "Insufficient balance.", http.StatusUnprocessableEntity)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New(CodeInvalidCredentials, "Invalid credentials.", http.StatusUnauthorized)
}

func ErrUsernameExists() *AppError {
	return New(CodeUsernameExists, "User already exists.", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "Invalid or expired token.", http.StatusUnauthorized)
}

// ---- Request control ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimitExceeded, "Rate limit exceeded.", http.StatusTooManyRequests)
}

func ErrRequestInProgress() *AppError {
	return New(CodeRequestInProgress, "A request with this idempotency key is still being processed.", http.StatusConflict)
}

func ErrIdempotencyKeyReused() *AppError {
	return New(CodeKeyReused, "This idempotency key was already used with a different request.", http.StatusUnprocessableEntity)
}

// ---- System & Infrastructure (SYS) ----

// StoreUnavailable wraps a persistence fault. The wrapped error is logged, never rendered.
func StoreUnavailable(err error) *AppError {
	return Wrap(CodeStoreUnavailable, "Storage is unavailable.", http.StatusServiceUnavailable, err)
}

// Timeout wraps a context that expired or was cancelled before the work started.
func Timeout(err error) *AppError {
	return Wrap(CodeTimeout, "Request timed out or was cancelled.", http.StatusGatewayTimeout, err)
}

// InternalError wraps an unexpected internal error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error.", http.StatusInternalServerError, err)
}

// Validation returns a request-shape validation error.
func Validation(message string) *AppError {
	return InvalidArgument(message)
}

// HasCode reports whether err is an *AppError carrying code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func IsInvalidArgument(err error) bool   { return HasCode(err, CodeInvalidArgument) }
func IsNotFound(err error) bool          { return HasCode(err, CodeNotFound) }
func IsInsufficientFunds(err error) bool { return HasCode(err, CodeInsufficientFunds) }
func IsStoreUnavailable(err error) bool  { return HasCode(err, CodeStoreUnavailable) }
func IsTimeout(err error) bool           { return HasCode(err, CodeTimeout) }

// IsBusiness reports whether err is an expected, locally recovered business failure
// as opposed to a fault.
func IsBusiness(err error) bool {
	return IsInvalidArgument(err) || IsNotFound(err) || IsInsufficientFunds(err)
}
