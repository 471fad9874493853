// Package errors provides the unified application error type.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode identifies a failure class.
type ErrorCode string

// Predefined error codes.
const (
	// Generic (1xxx)
	CodeSuccess            ErrorCode = "0"
	CodeUnknown            ErrorCode = "1000"
	CodeInvalidParam       ErrorCode = "1001"
	CodeNotFound           ErrorCode = "1004"
	CodeTooManyRequests    ErrorCode = "1006"
	CodeInternalError      ErrorCode = "1007"
	CodeServiceUnavailable ErrorCode = "1008"

	// Request validation (2xxx)
	CodeEmptyQuery      ErrorCode = "2001"
	CodeQueryTooLong    ErrorCode = "2002"
	CodeInvalidLanguage ErrorCode = "2003"

	// Configuration (3xxx)
	CodeNoCredentials ErrorCode = "3001"

	// Corpus (4xxx)
	CodeCorpusUnavailable ErrorCode = "4001"
	CodeCorpusCorrupt     ErrorCode = "4002"

	// Upstream LLM (5xxx)
	CodeUpstreamThrottled ErrorCode = "5001"
	CodeUpstreamFailed    ErrorCode = "5002"
	CodeUpstreamTimeout   ErrorCode = "5003"
	CodeMalformedResponse ErrorCode = "5004"
	CodeSearchFailed      ErrorCode = "5005"
)

// AppError is the application error carried across layers.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail attaches a detail string.
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// WithError attaches an underlying error.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New creates a new application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus maps an error code onto an HTTP status.
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam, CodeEmptyQuery, CodeQueryTooLong, CodeInvalidLanguage:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeTooManyRequests, CodeUpstreamThrottled:
		return http.StatusTooManyRequests
	case CodeServiceUnavailable, CodeNoCredentials, CodeCorpusUnavailable:
		return http.StatusServiceUnavailable
	case CodeUpstreamFailed, CodeUpstreamTimeout, CodeMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Predefined errors.
var (
	ErrInvalidParam       = New(CodeInvalidParam, "invalid parameter")
	ErrNotFound           = New(CodeNotFound, "resource not found")
	ErrTooManyRequests    = New(CodeTooManyRequests, "too many requests")
	ErrInternalError      = New(CodeInternalError, "internal server error")
	ErrServiceUnavailable = New(CodeServiceUnavailable, "service unavailable")

	ErrEmptyQuery      = New(CodeEmptyQuery, "query is required")
	ErrQueryTooLong    = New(CodeQueryTooLong, "query exceeds maximum length")
	ErrInvalidLanguage = New(CodeInvalidLanguage, "language must be \"ar\" or \"en\"")

	ErrNoCredentials     = New(CodeNoCredentials, "no upstream API keys configured")
	ErrCorpusUnavailable = New(CodeCorpusUnavailable, "legal document corpus unavailable")

	ErrUpstreamThrottled = New(CodeUpstreamThrottled, "upstream API throttled")
	ErrUpstreamFailed    = New(CodeUpstreamFailed, "upstream API call failed")
	ErrMalformedResponse = New(CodeMalformedResponse, "malformed upstream response")
	ErrSearchFailed      = New(CodeSearchFailed, "search processing failed")
)

// IsAppError reports whether err is an AppError.
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError converts err to an AppError, wrapping unknown errors.
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}
