// Package apperr holds the error taxonomy shared by the generators and
// the progression engine. The api layer maps these sentinels to HTTP
// statuses; InvalidState gets its own status so clients can stop
// offering a retry on a finished run.
package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidState    = errors.New("invalid state")
	ErrGeneration      = errors.New("generation failure")
	ErrMalformedOutput = errors.New("malformed model output")
	ErrConflict        = errors.New("concurrent update conflict")
)
