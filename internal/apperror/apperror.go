// Package apperror holds the sentinel errors shared by repositories, use cases and handlers.
package apperror

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)

type notFoundError struct {
	entity string
}

func (e *notFoundError) Error() string { return e.entity + " not found" }

func (e *notFoundError) Unwrap() error { return ErrNotFound }

// NotFound returns an error that matches ErrNotFound and names the missing entity.
func NotFound(entity string) error {
	return &notFoundError{entity: entity}
}

type conflictError struct {
	msg string
}

func (e *conflictError) Error() string { return e.msg }

func (e *conflictError) Unwrap() error { return ErrConflict }

// Conflict returns an error that matches ErrConflict.
func Conflict(msg string) error {
	return &conflictError{msg: msg}
}

type invalidError struct {
	msg string
}

func (e *invalidError) Error() string { return e.msg }

func (e *invalidError) Unwrap() error { return ErrInvalidInput }

// Invalid returns an error that matches ErrInvalidInput.
func Invalid(msg string) error {
	return &invalidError{msg: msg}
}
