package adapter

import "errors"

// Sentinel errors mapped from remote HTTP status codes. The reconciler treats
// ErrNotFound as a resolvable outcome (the entity is gone remotely) and the
// connection-level errors as retryable.
var (
	ErrBadRequest          = errors.New("remote rejected request")
	ErrNotFound            = errors.New("remote todo not found")
	ErrConflict            = errors.New("remote todo conflict")
	ErrInternalServerError = errors.New("remote internal server error")
	ErrBadGateway          = errors.New("remote bad gateway")
)
