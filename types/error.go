package types

import (
	"errors"
	"fmt"
)

// ErrorCode is a unified error code spanning provider adapters and
// pipeline invariant violations.
type ErrorCode string

// Provider adapter error codes. These map onto spec-level classes:
// ProviderFatal (non-retryable), ProviderRateLimit / ProviderTransient
// (retryable within the adapter, fatal only after retries exhaust).
const (
	ErrInvalidRequest      ErrorCode = "INVALID_REQUEST"
	ErrAuthentication      ErrorCode = "AUTHENTICATION"
	ErrForbidden           ErrorCode = "FORBIDDEN"
	ErrRateLimited         ErrorCode = "RATE_LIMITED"
	ErrQuotaExceeded       ErrorCode = "QUOTA_EXCEEDED"
	ErrModelNotFound       ErrorCode = "MODEL_NOT_FOUND"
	ErrUpstreamTimeout     ErrorCode = "UPSTREAM_TIMEOUT"
	ErrUpstreamError       ErrorCode = "UPSTREAM_ERROR"
	ErrProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"
)

// Pipeline/agent-protocol error codes.
const (
	ErrConfiguration      ErrorCode = "CONFIGURATION"       // missing credentials, unknown provider, malformed scenario
	ErrJSONExtraction     ErrorCode = "JSON_EXTRACTION"      // no valid JSON object/array found in model output
	ErrSchemaMismatch     ErrorCode = "SCHEMA_MISMATCH"      // parsed JSON does not match the expected shape
	ErrClaimIDMismatch    ErrorCode = "CLAIM_ID_MISMATCH"    // verifier verdicts don't cover exactly the extracted claim IDs
	ErrInvariantViolation ErrorCode = "INVARIANT_VIOLATION"  // a data-model invariant from the spec was violated
	ErrInternalError      ErrorCode = "INTERNAL_ERROR"
)

// Error is the single structured error type used across the module.
// Every provider adapter, agent, and orchestrator stage returns *Error
// (or a plain error wrapping one) rather than ad-hoc error values.
type Error struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"http_status,omitempty"`
	Retryable  bool      `json:"retryable"`
	Provider   string    `json:"provider,omitempty"`
	Cause      error     `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates an Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

func (e *Error) WithHTTPStatus(status int) *Error {
	e.HTTPStatus = status
	return e
}

func (e *Error) WithRetryable(retryable bool) *Error {
	e.Retryable = retryable
	return e
}

func (e *Error) WithProvider(provider string) *Error {
	e.Provider = provider
	return e
}

// IsRetryable reports whether err is, or wraps, an *Error flagged
// retryable. Errors that aren't *Error at all (e.g. context.Canceled)
// are treated as non-retryable.
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable
	}
	return false
}

// GetErrorCode extracts the ErrorCode from err, or "" if err is not an
// *Error.
func GetErrorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
