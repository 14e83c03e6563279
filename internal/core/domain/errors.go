package domain

import "errors"

// Domain errors represent failures callers are expected to branch on.
// Adapters wrap them with operation context; check with errors.Is.
var (
	// ErrStorage indicates the persistence engine could not complete a read
	// or write (I/O failure, lock timeout, constraint violation).
	// Storage failures are never retried.
	ErrStorage = errors.New("storage error")

	// ErrResourceNotFound indicates a static resource is missing or
	// unreadable at access time.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrNotImplemented indicates functionality is not wired up.
	ErrNotImplemented = errors.New("not implemented")
)
