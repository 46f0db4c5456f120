package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	ErrBadRequest    ErrorCode = "BAD_REQUEST"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrInsertFailure ErrorCode = "INSERT_FAILURE"
	ErrDeleteFailure ErrorCode = "DELETE_FAILURE"
	ErrInternal      ErrorCode = "INTERNAL_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying store or parse error.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewBadRequestError(message string, err error) *DomainError {
	return NewError(ErrBadRequest, message, err)
}

func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInsertFailureError(err error) *DomainError {
	return NewError(ErrInsertFailure, "failed to insert question", err)
}

func NewDeleteFailureError(id int64, err error) *DomainError {
	return NewError(ErrDeleteFailure, fmt.Sprintf("failed to delete question %d", id), err)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

// CodeOf returns the code of the first DomainError in err's chain, or
// ErrInternal when there is none.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ErrInternal
}

func IsBadRequest(err error) bool    { return err != nil && CodeOf(err) == ErrBadRequest }
func IsNotFound(err error) bool      { return err != nil && CodeOf(err) == ErrNotFound }
func IsInsertFailure(err error) bool { return err != nil && CodeOf(err) == ErrInsertFailure }
func IsDeleteFailure(err error) bool { return err != nil && CodeOf(err) == ErrDeleteFailure }
