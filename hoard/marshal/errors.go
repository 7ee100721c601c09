package marshal

import "errors"

var (
	// ErrUnsavedChildren indicates Encode was asked to produce a single blob
	// for a value whose children have not been saved yet. Use Save instead.
	ErrUnsavedChildren = errors.New("marshal: value has unsaved children")

	// ErrZero indicates an all-zero encoding for a type that forbids it.
	ErrZero = errors.New("marshal: zero value for non-zero type")

	// ErrMetadata indicates unsized metadata that cannot describe a blob.
	ErrMetadata = errors.New("marshal: metadata out of range")
)
