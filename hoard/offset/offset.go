package offset

import (
	"fmt"

	"github.com/joshuapare/hoardkit/hoard/blob"
	"github.com/joshuapare/hoardkit/internal/buf"
)

// Max is the largest representable offset.
const Max uint64 = 1<<62 - 1

// Size is the encoded size of an Offset.
const Size = 8

// Layout is the blob layout of an encoded Offset. The tag bit guarantees the
// word is never zero, so the whole word is a niche.
var Layout = blob.NewNonZero(Size)

// Offset is a validated position within a hoard body. The zero value is not
// a valid Offset; use New.
type Offset struct {
	raw uint64
}

// New returns the Offset for o, or false if o exceeds Max.
func New(o uint64) (Offset, bool) {
	if o > Max {
		return Offset{}, false
	}
	return Offset{raw: o<<1 | 1}, true
}

// MustNew is like New but panics when o is out of range.
func MustNew(o uint64) Offset {
	off, ok := New(o)
	if !ok {
		panic(&RangeError{Value: o})
	}
	return off
}

// FromWord validates a raw tagged word read from a file.
func FromWord(raw uint64) (Offset, error) {
	if raw&1 != 1 {
		return Offset{}, &TagError{Raw: raw}
	}
	off, ok := New(raw >> 1)
	if !ok {
		return Offset{}, &RangeError{Value: raw >> 1}
	}
	return off, nil
}

// Get returns the logical byte offset.
func (o Offset) Get() uint64 { return o.raw >> 1 }

// Word returns the tagged word as stored on disk.
func (o Offset) Word() uint64 { return o.raw }

// IsZero reports whether o is the zero value, which is never a valid Offset.
func (o Offset) IsZero() bool { return o.raw == 0 }

// PutLE writes the tagged word into b[0:8].
func (o Offset) PutLE(b []byte) { buf.PutU64LE(b, o.raw) }

// Encode writes o into w.
func (o Offset) Encode(w *blob.Writer) {
	var tmp [Size]byte
	o.PutLE(tmp[:])
	w.WriteBytes(tmp[:])
}

// Validate checks the next encoded Offset in v.
func Validate(v *blob.Validator) error {
	_, err := FromWord(buf.U64LE(v.Bytes(Size)))
	return err
}

// Decode reads an Offset from an already validated blob.
func Decode(d *blob.Decoder) Offset {
	raw := buf.U64LE(d.Bytes(Size))
	if raw&1 != 1 {
		panic(&TagError{Raw: raw})
	}
	return Offset{raw: raw}
}

func (o Offset) String() string {
	return fmt.Sprintf("Offset(%#x)", o.Get())
}
