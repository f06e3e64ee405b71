package model

import (
	"errors"
	"strings"
)

// Common errors used across the application
var (
	// ErrNameTaken is returned when registering a name that already exists
	ErrNameTaken = errors.New("name already taken")

	// ErrNotRegistered is returned when an unknown participant posts a message
	ErrNotRegistered = errors.New("you must join the room before sending a message")

	// ErrParticipantNotFound is returned by storage lookups
	ErrParticipantNotFound = errors.New("participant not found")
)

// InvalidLimitMessage is reported when a history limit is not a positive integer
const InvalidLimitMessage = "enter a valid limit"

// ValidationError reports every rule a request violated
type ValidationError struct {
	Messages []string
}

// NewValidationError creates a ValidationError from the given messages
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// StoreError wraps a failure of the persistence layer
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError wraps err as a StoreError for the named operation
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
