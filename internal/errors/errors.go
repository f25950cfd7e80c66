package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// EmptyInput indicates the expression or equation is blank
	EmptyInput ErrorCode = "EMPTY_INPUT"
	// InputTooLong indicates the input exceeds the configured length
	InputTooLong ErrorCode = "INPUT_TOO_LONG"
	// MalformedEquation indicates the equation does not have exactly one '='
	MalformedEquation ErrorCode = "MALFORMED_EQUATION"
	// ParseFailure indicates the normalized text could not be parsed
	ParseFailure ErrorCode = "PARSE_FAILURE"
	// NoVariable indicates the equation has no free symbol
	NoVariable ErrorCode = "NO_VARIABLE"
	// MultipleVariables indicates the equation has more than one free symbol
	MultipleVariables ErrorCode = "MULTIPLE_VARIABLES"
	// NonLinear indicates degree > 1 or a non-polynomial equation
	NonLinear ErrorCode = "NONLINEAR"
	// Identity indicates every value satisfies the equation
	Identity ErrorCode = "IDENTITY"
	// Contradiction indicates no value satisfies the equation
	Contradiction ErrorCode = "CONTRADICTION"
	// InvalidRequest indicates a malformed request body
	InvalidRequest ErrorCode = "INVALID_REQUEST"
	// MethodNotAllowed indicates the wrong HTTP method
	MethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	// RateLimited indicates too many requests from one client
	RateLimited ErrorCode = "RATE_LIMITED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// MathError represents a pipeline or transport failure with a stable code
// and a user-facing message.
type MathError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	cause   error     // Underlying error (not exported to JSON)
}

// New creates a MathError without a cause.
func New(code ErrorCode, message string) *MathError {
	return &MathError{Code: code, Message: message}
}

// Wrap creates a MathError carrying cause.
func Wrap(code ErrorCode, message string, cause error) *MathError {
	return &MathError{Code: code, Message: message, cause: cause}
}

// Newf creates a MathError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *MathError {
	return &MathError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface. The cause is appended unless the
// message already quotes it.
func (e *MathError) Error() string {
	if e.cause != nil && !strings.Contains(e.Message, e.cause.Error()) {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *MathError) Unwrap() error {
	return e.cause
}

// IsPolicy reports whether the code is a solved-but-degenerate outcome
// rather than a failure of the input.
func (c ErrorCode) IsPolicy() bool {
	return c == Identity || c == Contradiction
}

// CodeOf returns the code of the first MathError in err's chain, or
// InternalError.
func CodeOf(err error) ErrorCode {
	var me *MathError
	if stderrors.As(err, &me) {
		return me.Code
	}
	return InternalError
}

// As returns the first MathError in err's chain.
func As(err error) (*MathError, bool) {
	var me *MathError
	ok := stderrors.As(err, &me)
	return me, ok
}

// StatusFor maps error codes to HTTP status codes
func StatusFor(code ErrorCode) int {
	switch code {
	case EmptyInput, InputTooLong, MalformedEquation, ParseFailure,
		NoVariable, MultipleVariables, NonLinear, InvalidRequest:
		return http.StatusBadRequest // 400
	case Identity, Contradiction:
		return http.StatusOK // 200
	case MethodNotAllowed:
		return http.StatusMethodNotAllowed // 405
	case RateLimited:
		return http.StatusTooManyRequests // 429
	case InternalError:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}
