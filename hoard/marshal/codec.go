package marshal

import (
	"math"

	"github.com/joshuapare/hoardkit/hoard/blob"
)

// Codec validates, decodes and encodes fixed-layout blobs of T.
type Codec[T any] interface {
	// Layout returns the blob layout of T.
	Layout() blob.Layout

	// Validate performs structural checks only. It must not follow pointers
	// to their targets; only their shape is checked.
	Validate(v *blob.Validator) error

	// Decode builds a T from a blob that passed Validate.
	Decode(d *blob.Decoder) T

	// Encode captures the encoding state of v. The state may keep pointers
	// into v so saved children can be converted to offsets in place.
	Encode(v *T) State
}

// Unsized is a Codec whose blob size depends on per-value metadata, such as
// the length of a byte string. Layout returns the layout for metadata 0.
type Unsized[T any] interface {
	Codec[T]

	// Metadata returns the metadata describing v.
	Metadata(v *T) uint64

	// LayoutFor returns the layout of a value with the given metadata.
	// Metadata read from a file is untrusted and may be rejected.
	LayoutFor(meta uint64) (blob.Layout, error)
}

// LayoutOf returns the layout of a value of c with metadata meta. For sized
// codecs meta is ignored.
func LayoutOf[T any](c Codec[T], meta uint64) (blob.Layout, error) {
	if u, ok := c.(Unsized[T]); ok {
		return u.LayoutFor(meta)
	}
	return c.Layout(), nil
}

// MetadataOf returns v's metadata, which is always zero for sized codecs.
func MetadataOf[T any](c Codec[T], v *T) uint64 {
	if u, ok := c.(Unsized[T]); ok {
		return u.Metadata(v)
	}
	return 0
}

// ValidateBlob validates raw as an encoding of T with metadata meta.
func ValidateBlob[T any](c Codec[T], raw []byte, meta uint64) (blob.Valid, error) {
	l, err := LayoutOf(c, meta)
	if err != nil {
		return blob.Valid{}, err
	}
	return blob.Validate(raw, l, c.Validate)
}

// DecodeBlob validates raw and, only if that succeeds, decodes it.
func DecodeBlob[T any](c Codec[T], raw []byte, meta uint64) (T, error) {
	valid, err := ValidateBlob(c, raw, meta)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.Decode(valid.Decoder()), nil
}

// ValidateField validates the next field of a compound blob with c. A
// failure is wrapped in a *blob.ValueError naming the field.
func ValidateField[T any](v *blob.Validator, c Codec[T]) error {
	sub, idx := v.Field(c.Layout().Size())
	if err := c.Validate(sub); err != nil {
		return &blob.ValueError{Field: idx, Err: err}
	}
	return nil
}

// DecodeField decodes the next field of a validated compound blob.
func DecodeField[T any](d *blob.Decoder, c Codec[T]) T {
	return c.Decode(d.Field(c.Layout().Size()))
}

// EncodeField writes the next size bytes of w from s.
func EncodeField(w *blob.Writer, size int, s State) {
	sub := w.Field(size)
	s.EncodeBlob(sub)
	sub.Done()
}

// Encode encodes a value that has no unsaved children into a single blob.
func Encode[T any](c Codec[T], v *T) ([]byte, error) {
	l, err := LayoutOf(c, MetadataOf(c, v))
	if err != nil {
		return nil, err
	}
	s := c.Encode(v)
	if s.Poll() != nil {
		return nil, ErrUnsavedChildren
	}
	w := blob.NewWriter(l.Size())
	s.EncodeBlob(w)
	return w.Finish(), nil
}

func checkedLen(meta uint64) (int, error) {
	if meta > math.MaxInt32 {
		return 0, ErrMetadata
	}
	return int(meta), nil
}
