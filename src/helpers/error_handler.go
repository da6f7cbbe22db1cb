package helpers

import (
	"errors"
	"fmt"
	"sync"

	"market-climber/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type MarketClimberError struct {
	Message string
	Cause   error
}

func (e *MarketClimberError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *MarketClimberError) Unwrap() error {
	return e.Cause
}

// Distinct error types for errors.As checks
type ConfigurationError struct{ MarketClimberError }
type NetworkError struct{ MarketClimberError }
type UpstreamError struct{ MarketClimberError }
type ValidationError struct{ MarketClimberError }
type ParseError struct{ MarketClimberError }
type DatabaseError struct{ MarketClimberError }

// StatusError reports a non-success HTTP status from the provider
type StatusError struct {
	MarketClimberError
	StatusCode int
}

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

func NewNetworkError(cause error, format string, args ...interface{}) *NetworkError {
	return &NetworkError{MarketClimberError{Message: fmt.Sprintf(format, args...), Cause: cause}}
}

func NewStatusError(code int) *StatusError {
	return &StatusError{
		MarketClimberError: MarketClimberError{Message: fmt.Sprintf("unexpected status %d", code)},
		StatusCode:         code,
	}
}

func NewUpstreamError(format string, args ...interface{}) *UpstreamError {
	return &UpstreamError{MarketClimberError{Message: fmt.Sprintf(format, args...)}}
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{MarketClimberError{Message: fmt.Sprintf(format, args...)}}
}

func NewParseError(cause error, format string, args ...interface{}) *ParseError {
	return &ParseError{MarketClimberError{Message: fmt.Sprintf(format, args...), Cause: cause}}
}

func NewDatabaseError(cause error, format string, args ...interface{}) *DatabaseError {
	return &DatabaseError{MarketClimberError{Message: fmt.Sprintf(format, args...), Cause: cause}}
}

func NewConfigurationError(cause error, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{MarketClimberError{Message: fmt.Sprintf(format, args...), Cause: cause}}
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// Fallback reasons recorded on a snapshot
const (
	KindTransport = "transport"
	KindStatus    = "status"
	KindUpstream  = "upstream"
	KindMalformed = "malformed"
	KindParse     = "parse"
	KindUnknown   = "unknown"
)

// ErrorKind maps an error chain to a short fallback reason
func ErrorKind(err error) string {
	var (
		netErr    *NetworkError
		statusErr *StatusError
		upErr     *UpstreamError
		valErr    *ValidationError
		parseErr  *ParseError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &statusErr):
		return KindStatus
	case errors.As(err, &netErr):
		return KindTransport
	case errors.As(err, &upErr):
		return KindUpstream
	case errors.As(err, &valErr):
		return KindMalformed
	case errors.As(err, &parseErr):
		return KindParse
	default:
		return KindUnknown
	}
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

// ErrorHandler logs failures and keeps a running count of consecutive errors
type ErrorHandler struct {
	Logger     *logger.Logger
	ErrorCount int
	mu         sync.Mutex
}

func NewErrorHandler(l *logger.Logger) *ErrorHandler {
	if l == nil {
		l = logger.NewLogger(nil, "ErrorHandler")
	}
	return &ErrorHandler{Logger: l}
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ResetErrorCount() {
	e.mu.Lock()
	e.ErrorCount = 0
	e.mu.Unlock()
}

// -----------------------------------------------------------------------------

// Consecutive returns the number of errors since the last reset
func (e *ErrorHandler) Consecutive() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ErrorCount
}

// -----------------------------------------------------------------------------

// Handle logs err with its kind and bumps the counter. Nil errors are ignored.
func (e *ErrorHandler) Handle(err error, context string) {
	if err == nil {
		return
	}
	e.mu.Lock()
	e.ErrorCount++
	count := e.ErrorCount
	e.mu.Unlock()

	e.Logger.Warning("Error in %s (%s, %d in a row): %v", context, ErrorKind(err), count, err)
}
