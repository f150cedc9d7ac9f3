// Package errors provides custom error types for the financecontroll core.
// All repository and storage errors use AppError so the caller always sees a
// stable error code and a user-facing message.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Storage configuration and lifecycle errors.
var (
	ErrConfiguration   = &AppError{Code: "CONFIGURATION_ERROR", Message: "Invalid storage configuration", StatusCode: http.StatusBadRequest}
	ErrConnection      = &AppError{Code: "CONNECTION_ERROR", Message: "Could not connect to the storage backend", StatusCode: http.StatusServiceUnavailable}
	ErrStorageQuota    = &AppError{Code: "CONNECTION_ERROR", Message: "Device storage quota exhausted", StatusCode: http.StatusInsufficientStorage}
	ErrLocalStorage    = &AppError{Code: "CONNECTION_ERROR", Message: "Local database storage is unavailable", StatusCode: http.StatusServiceUnavailable}
	ErrMigration       = &AppError{Code: "MIGRATION_ERROR", Message: "Schema migration failed", StatusCode: http.StatusInternalServerError}
	ErrNotImplemented  = &AppError{Code: "NOT_IMPLEMENTED", Message: "This storage backend is not implemented yet", StatusCode: http.StatusNotImplemented}
	ErrStorageNotReady = &AppError{Code: "STORAGE_NOT_READY", Message: "Storage is not ready", StatusCode: http.StatusServiceUnavailable}
)

// Validation and invariant errors. Messages are user-facing and must be
// surfaced verbatim to the caller.
var (
	ErrValidation         = &AppError{Code: "VALIDATION_ERROR", Message: "Validation failed", StatusCode: http.StatusBadRequest}
	ErrInvariantViolation = &AppError{Code: "INVARIANT_VIOLATION", Message: "Operation violates a domain invariant", StatusCode: http.StatusBadRequest}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Per-entity not-found errors.
var (
	ErrPortfolioNotFound    = &AppError{Code: "PORTFOLIO_NOT_FOUND", Message: "Portfolio not found", StatusCode: http.StatusNotFound}
	ErrAssetNotFound        = &AppError{Code: "ASSET_NOT_FOUND", Message: "Asset not found", StatusCode: http.StatusNotFound}
	ErrTransactionNotFound  = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrValuationNotFound    = &AppError{Code: "VALUATION_NOT_FOUND", Message: "Valuation not found", StatusCode: http.StatusNotFound}
	ErrExchangeRateNotFound = &AppError{Code: "EXCHANGE_RATE_NOT_FOUND", Message: "Exchange rate not found", StatusCode: http.StatusNotFound}
)
