package domain

import (
	"errors"
	"fmt"
)

// Error classes shared by every admin operation
var (
	// ErrTransport the request never produced a usable HTTP response
	ErrTransport = errors.New("transport failure")
	// ErrProtocol the server answered, but not with a success envelope
	ErrProtocol = errors.New("protocol failure")
	// ErrInvalidInput the operator supplied an incomplete or malformed draft
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized no token, or the server rejected it
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound referenced record does not exist
	ErrNotFound = errors.New("resource not found")
)

// DomainError carries a stable code, an operator-facing message and the cause
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface (used for logs)
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// UserMessage returns the message shown in alerts and status lines
func (e *DomainError) UserMessage() string {
	return e.Message
}

// Unwrap returns the wrapped error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps a network failure of the named operation
func NewTransportError(op string, err error) error {
	return &DomainError{
		Code:    "TRANSPORT_ERROR",
		Message: fmt.Sprintf("%s: request failed", op),
		Err:     fmt.Errorf("%w: %v", ErrTransport, err),
	}
}

// NewProtocolError reports a non-success response of the named operation
func NewProtocolError(op, message string) error {
	if message == "" {
		message = "server reported failure"
	}
	return &DomainError{
		Code:    "PROTOCOL_ERROR",
		Message: fmt.Sprintf("%s: %s", op, message),
		Err:     ErrProtocol,
	}
}

// NewInvalidInputError reports a draft that cannot be submitted
func NewInvalidInputError(message string) error {
	return &DomainError{
		Code:    "INVALID_INPUT",
		Message: message,
		Err:     ErrInvalidInput,
	}
}

// NewUnauthorizedError reports a missing or rejected credential
func NewUnauthorizedError(message string) error {
	return &DomainError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Err:     ErrUnauthorized,
	}
}

// NewNotFoundError reports a missing record
func NewNotFoundError(resourceType, id string) error {
	return &DomainError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s '%s' not found", resourceType, id),
		Err:     ErrNotFound,
	}
}

// UserMessage extracts the operator-facing message from any error
func UserMessage(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.UserMessage()
	}
	return err.Error()
}

// IsTransport reports whether err is a transport failure
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsProtocol reports whether err is a protocol failure
func IsProtocol(err error) bool {
	return errors.Is(err, ErrProtocol)
}

// IsInvalidInput reports whether err is a user-input failure
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnauthorized reports whether err is an authentication failure
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFound reports whether err is a missing-record failure
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
