package scene

import "errors"

// Errors reported by scene operations. They are recoverable: the failing
// operation leaves the model untouched.
var (
	ErrOutOfRange   = errors.New("index out of range")
	ErrInvalidTitle = errors.New("scene title must not be empty")
	ErrLastScene    = errors.New("the last remaining scene cannot be deleted")
	ErrSceneGone    = errors.New("scene was deleted")
	ErrModeChanged  = errors.New("scene switched mode")
)
