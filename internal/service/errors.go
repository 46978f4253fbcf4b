// Package service holds the ShareIt business rules.  Services resolve the
// entities they need through a repository.Store and report failures as
// *Error values whose Kind decides the HTTP status.
package service

import (
	"errors"
	"fmt"

	"github.com/iliyamo/shareit/internal/repository"
)

// Kind classifies a service failure.
type Kind string

const (
	KindValidation Kind = "validation" // malformed input or a broken business rule
	KindNotFound   Kind = "not_found"  // missing entity, or a caller not allowed to see it
	KindDuplicate  Kind = "duplicate"  // unique email collision
)

// Error is a classified service failure.  Message is safe to return to
// clients.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func duplicatef(format string, args ...any) error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err, or "" when err is not a service error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// lookup maps repository.ErrNotFound to a NotFound error with msg and
// passes any other error through.
func lookup(err error, format string, args ...any) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFoundf(format, args...)
	}
	return err
}
