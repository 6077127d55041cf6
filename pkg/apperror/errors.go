package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string         `json:"error_code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"` // Wrapped internal error (not exposed to client)
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

// WithDetails attaches structured context to the error and returns it.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
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
	CodeValidation             = "VAL_001"
	CodeInvalidAmount          = "WAL_001"
	CodeInsufficientBalance    = "WAL_002"
	CodeWalletNotActive        = "WAL_003"
	CodeInvalidStateTransition = "WAL_004"
	CodeNonZeroBalanceOnClose  = "WAL_005"
	CodeAlreadyExists          = "WAL_006"
	CodeNotFound               = "WAL_007"
	CodeAlreadyClosed          = "WAL_008"
	CodeTransferFailed         = "WAL_009"
	CodeConcurrencyConflict    = "ES_001"
	CodeStorageFailure         = "SYS_001"
	CodeInvalidToken           = "AUTH_001"
	CodeRateLimitExceeded      = "RATE_001"
)

// ---- Input (VAL) ----

// Validation returns a VAL_001 error for malformed input. Never retried.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

// ---- Wallet business rules (WAL) ----

func ErrInvalidAmount(amount int64) *AppError {
	return New(CodeInvalidAmount, "Invalid amount", http.StatusBadRequest).
		WithDetails(map[string]any{"amount": amount})
}

func ErrInsufficientBalance(walletID string, required, available int64) *AppError {
	return New(CodeInsufficientBalance, "Insufficient balance in wallet", http.StatusPaymentRequired).
		WithDetails(map[string]any{"wallet_id": walletID, "required": required, "available": available})
}

func ErrWalletNotActive(walletID string, status string) *AppError {
	return New(CodeWalletNotActive, fmt.Sprintf("Wallet is not active (status: %s)", status), http.StatusConflict).
		WithDetails(map[string]any{"wallet_id": walletID, "status": status})
}

func ErrInvalidStateTransition(from string, action string) *AppError {
	return New(CodeInvalidStateTransition, fmt.Sprintf("Cannot %s wallet in status %s", action, from), http.StatusConflict).
		WithDetails(map[string]any{"current_status": from, "attempted": action})
}

func ErrNonZeroBalanceOnClose(walletID string, balance int64) *AppError {
	return New(CodeNonZeroBalanceOnClose, "Wallet balance must be zero to close", http.StatusConflict).
		WithDetails(map[string]any{"wallet_id": walletID, "balance": balance})
}

func ErrAlreadyExists(entity string) *AppError {
	return New(CodeAlreadyExists, fmt.Sprintf("%s already exists", entity), http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrAlreadyClosed(walletID string) *AppError {
	return New(CodeAlreadyClosed, "Wallet is already closed", http.StatusConflict).
		WithDetails(map[string]any{"wallet_id": walletID})
}

// ErrTransferFailed reports a transfer whose credit leg failed after the debit
// committed. compensated tells whether the source was credited back.
func ErrTransferFailed(correlationID string, compensated bool, cause error) *AppError {
	return Wrap(CodeTransferFailed, "Transfer failed", http.StatusConflict, cause).
		WithDetails(map[string]any{"correlation_id": correlationID, "compensated": compensated})
}

// ---- Event store (ES) ----

// ErrConcurrencyConflict signals a stale expected version. Callers reload and retry.
func ErrConcurrencyConflict(aggregateID string, expected, actual int64) *AppError {
	return New(CodeConcurrencyConflict, "Concurrency conflict", http.StatusConflict).
		WithDetails(map[string]any{"aggregate_id": aggregateID, "expected_version": expected, "actual_version": actual})
}

// ---- Auth & rate limiting ----

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
}

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimitExceeded, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// StorageFailure wraps a fatal persistence error.
func StorageFailure(err error) *AppError {
	return Wrap(CodeStorageFailure, "Storage failure", http.StatusInternalServerError, err)
}

// InternalError wraps an unexpected internal error as SYS_001.
func InternalError(err error) *AppError {
	return Wrap(CodeStorageFailure, "Internal server error", http.StatusInternalServerError, err)
}

// HasCode reports whether err wraps an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsConcurrencyConflict reports whether err is a retriable version conflict.
func IsConcurrencyConflict(err error) bool {
	return HasCode(err, CodeConcurrencyConflict)
}
