package common

import (
	"errors"
	"fmt"

	"github.com/joseph-ayodele/invoice-parser/constants"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error

	// RawResponse is the untouched model reply, set only for malformed replies.
	RawResponse *string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel that corresponds to the error code.
func (e *AppError) Is(target error) bool {
	s, ok := codeSentinels[e.Code]
	return ok && s == target
}

// Common application errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
	ErrUnreadableDocument = errors.New("unreadable document")
	ErrModelCall          = errors.New("model call failed")
	ErrMalformedReply     = errors.New("malformed reply")
)

var codeSentinels = map[string]error{
	constants.CodeUnreadableDocument: ErrUnreadableDocument,
	constants.CodeModelCallFailed:    ErrModelCall,
	constants.CodeMalformedReply:     ErrMalformedReply,
	constants.CodeConfig:             ErrInvalidInput,
	constants.CodeInternal:           ErrInternal,
}

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// UnreadableDocument is returned when neither a text layer nor a page image could be obtained.
func UnreadableDocument() *AppError {
	return NewAppError(constants.CodeUnreadableDocument,
		"Could not process PDF - neither text nor image extraction worked", nil)
}

// ModelCallFailed wraps any transport, auth or provider failure.
func ModelCallFailed(cause error) *AppError {
	return NewAppError(constants.CodeModelCallFailed,
		fmt.Sprintf("API call failed: %v", cause), cause)
}

// MalformedReply carries the decode failure and the verbatim reply.
func MalformedReply(cause error, raw string) *AppError {
	e := NewAppError(constants.CodeMalformedReply,
		fmt.Sprintf("Failed to parse model response as JSON: %v", cause), cause)
	e.RawResponse = &raw
	return e
}

// AsAppError unwraps err into an *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
