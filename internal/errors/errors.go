package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeConfiguration ErrorType = "Configuration"
	ErrorTypeDecode        ErrorType = "Decode"
	ErrorTypeFileSystem    ErrorType = "FileSystem"
	ErrorTypeNetwork       ErrorType = "Network"
	ErrorTypeNotFound      ErrorType = "NotFound"
	ErrorTypeValidation    ErrorType = "Validation"
)

// CheckError represents a user-friendly error with actionable guidance
type CheckError struct {
	Type      ErrorType
	Message   string
	Cause     string
	Solutions []string
	Help      string
	Err       error
}

// Error returns the short message; use DisplayError for the full guidance
func (e *CheckError) Error() string {
	return e.Message
}

// Unwrap exposes the wrapped error to errors.Is and errors.As
func (e *CheckError) Unwrap() error {
	return e.Err
}

// Detail renders the message with cause, solutions and help
func (e *CheckError) Detail() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error: %s\n", e.Message))

	if e.Cause != "" {
		sb.WriteString(fmt.Sprintf("Cause: %s\n", e.Cause))
	}

	if len(e.Solutions) > 0 {
		sb.WriteString("\nSolutions:\n")
		for _, solution := range e.Solutions {
			sb.WriteString(fmt.Sprintf("  %s\n", solution))
		}
	}

	if e.Help != "" {
		sb.WriteString(fmt.Sprintf("Help: %s\n", e.Help))
	}

	return sb.String()
}

// Format implements fmt.Formatter for custom formatting
func (e *CheckError) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprintf(f, "%s", e.Error())
	case 'v':
		if f.Flag('+') {
			fmt.Fprintf(f, "[%s] %s", e.Type, e.Detail())
		} else {
			fmt.Fprintf(f, "%s", e.Error())
		}
	case 'q':
		fmt.Fprintf(f, "%q", e.Error())
	}
}

// New creates a new CheckError
func New(errType ErrorType, message string) *CheckError {
	return &CheckError{
		Type:    errType,
		Message: message,
	}
}

// Wrap creates a CheckError around err, using err's text as the message
func Wrap(errType ErrorType, err error) *CheckError {
	return &CheckError{
		Type:    errType,
		Message: err.Error(),
		Err:     err,
	}
}

// WithCause adds cause information
func (e *CheckError) WithCause(cause string) *CheckError {
	e.Cause = cause
	return e
}

// WithSolutions adds solution steps
func (e *CheckError) WithSolutions(solutions ...string) *CheckError {
	e.Solutions = append(e.Solutions, solutions...)
	return e
}

// WithHelp adds help command
func (e *CheckError) WithHelp(help string) *CheckError {
	e.Help = help
	return e
}

// IsType reports whether err is a CheckError of the given type
func IsType(err error, errType ErrorType) bool {
	var checkErr *CheckError
	if errors.As(err, &checkErr) {
		return checkErr.Type == errType
	}
	return false
}

// IsUserError checks if error requires user action
func IsUserError(err error) bool {
	var checkErr *CheckError
	return errors.As(err, &checkErr)
}

// GetExitCode returns appropriate exit code for error type
func GetExitCode(err error) int {
	var checkErr *CheckError
	if !errors.As(err, &checkErr) {
		return 1
	}

	switch checkErr.Type {
	case ErrorTypeConfiguration:
		return 78 // EX_CONFIG
	case ErrorTypeFileSystem:
		return 73 // EX_CANTCREAT
	case ErrorTypeNetwork:
		return 69 // EX_UNAVAILABLE
	case ErrorTypeDecode:
		return 65 // EX_DATAERR
	case ErrorTypeValidation:
		return 64 // EX_USAGE
	default:
		return 1
	}
}
