package blob

import (
	"errors"
	"fmt"
)

// ErrPadding indicates reserved bytes that violate their required pattern:
// padding that is not zero, or a niche that does not match the state it
// encodes.
var ErrPadding = errors.New("blob: padding bytes violate required pattern")

// DiscriminantError reports a discriminant byte outside the valid range.
type DiscriminantError struct {
	Got byte
}

func (e *DiscriminantError) Error() string {
	return fmt.Sprintf("blob: invalid discriminant 0x%02x", e.Got)
}

// ValueError reports that a field of a compound blob failed its own
// validation.
type ValueError struct {
	Field int
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("blob: field %d: %v", e.Field, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }

// SizeError reports a buffer whose length does not match the layout it is
// validated against.
type SizeError struct {
	Want int
	Got  int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("blob: size mismatch: got %d bytes, layout needs %d", e.Got, e.Want)
}
