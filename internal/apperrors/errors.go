package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the resource is in a state that does not permit the operation,
// e.g. a fiscal period whose status changed underneath a close attempt.
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates that the acting user is not permitted to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")
