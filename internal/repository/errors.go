// Package repository defines the storage contracts used by the services
// and their MySQL implementation.  Sentinel errors let the service layer
// distinguish a missing row or a unique-key collision from a failure of
// the backing store.
package repository

import "errors"

// ErrNotFound is returned when a lookup by id (or a "first matching"
// lookup) finds no row.  Services translate it into a not-found error.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when an insert or update collides with
// the unique email index.  Services translate it into a duplicate error.
var ErrDuplicateEmail = errors.New("email already exists")
