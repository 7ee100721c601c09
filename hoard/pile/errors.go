package pile

import "errors"

var (
	// ErrOutOfBounds indicates a fetch beyond the end of the pile.
	ErrOutOfBounds = errors.New("pile: out of bounds")

	// ErrClosed indicates use of a snapshot after Close.
	ErrClosed = errors.New("pile: snapshot closed")
)
