package raster

// Errors returned by buffer and filter operations. They are precondition failures:
// an operation that returns one of them has not modified any buffer.
// Use errors.Is to test for them since call sites add context.
const (
	ErrInvalidDimensions = errorString("invalid dimensions")
	ErrOutOfRange        = errorString("parameter out of range")
	ErrAlreadyLocked     = errorString("surface already locked")
	ErrNotLocked         = errorString("buffer not locked")
	ErrMalformedKernel   = errorString("malformed kernel")
)

type errorString string

func (e errorString) Error() string { return string(e) }
