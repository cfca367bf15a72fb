// File: internal/services/chat/errors.go
package chat

import (
    "errors"
    "fmt"
)

type ErrorType string

const (
    ErrTypeValidation   ErrorType = "VALIDATION"
    ErrTypeNotFound     ErrorType = "NOT_FOUND"
    ErrTypeUnauthorized ErrorType = "UNAUTHORIZED"
    ErrTypeStorage      ErrorType = "STORAGE"
)

type ChatError struct {
    Type      ErrorType
    Operation string
    Message   string
    Cause     error
}

func (e *ChatError) Error() string {
    if e.Cause != nil {
        return fmt.Sprintf("%s error in %s: %s (caused by: %v)",
            e.Type, e.Operation, e.Message, e.Cause)
    }
    return fmt.Sprintf("%s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ChatError) Unwrap() error {
    return e.Cause
}

func NewValidationError(operation, msg string) *ChatError {
    return &ChatError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewNotFoundError(operation, msg string) *ChatError {
    return &ChatError{Type: ErrTypeNotFound, Operation: operation, Message: msg}
}

func NewUnauthorizedError(operation, msg string) *ChatError {
    return &ChatError{Type: ErrTypeUnauthorized, Operation: operation, Message: msg}
}

func NewStorageError(operation, msg string, cause error) *ChatError {
    return &ChatError{Type: ErrTypeStorage, Operation: operation, Message: msg, Cause: cause}
}

// TypeOf classifies an error for transport mapping; unknown errors map
// to the empty type and should be treated as internal failures.
func TypeOf(err error) ErrorType {
    var ce *ChatError
    if errors.As(err, &ce) {
        return ce.Type
    }
    return ""
}
