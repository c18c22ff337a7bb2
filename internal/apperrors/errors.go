package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the operation is not allowed in the
// resource's current state (e.g. deleting a receipt that has payments).
var ErrConflict = errors.New("operation conflicts with resource state")

// ErrPersistence indicates that a write to the persistence boundary
// failed. The in-memory state is left unchanged so the caller may retry.
var ErrPersistence = errors.New("persistence error")

// ErrDelivery indicates that an external collaborator (email) failed to
// deliver. Not retried automatically.
var ErrDelivery = errors.New("delivery error")
