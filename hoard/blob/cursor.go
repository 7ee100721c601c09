package blob

import "fmt"

// Validator walks an untrusted blob. Bytes handed out by a Validator must
// only be inspected, never reinterpreted as a trusted value.
type Validator struct {
	buf   []byte
	pos   int
	field int
}

// Len returns the length of the blob being validated.
func (v *Validator) Len() int { return len(v.buf) }

// Remaining returns the number of bytes not yet consumed.
func (v *Validator) Remaining() int { return len(v.buf) - v.pos }

// Bytes consumes and returns the next n untrusted bytes.
func (v *Validator) Bytes(n int) []byte {
	return take(v.buf, &v.pos, n)
}

// Byte consumes one untrusted byte.
func (v *Validator) Byte() byte { return v.Bytes(1)[0] }

// Peek returns the remaining bytes without consuming them.
func (v *Validator) Peek() []byte { return v.buf[v.pos:] }

// Rest consumes and returns all remaining bytes.
func (v *Validator) Rest() []byte { return v.Bytes(v.Remaining()) }

// Field consumes the next n bytes as a nested field and returns a validator
// over them together with the field's index within this blob.
func (v *Validator) Field(n int) (*Validator, int) {
	idx := v.field
	v.field++
	return &Validator{buf: v.Bytes(n)}, idx
}

// Validate checks buf against layout l using check. It is the only way to
// obtain a Valid blob.
func Validate(buf []byte, l Layout, check func(*Validator) error) (Valid, error) {
	if len(buf) != l.Size() {
		return Valid{}, &SizeError{Want: l.Size(), Got: len(buf)}
	}
	if err := check(&Validator{buf: buf}); err != nil {
		return Valid{}, err
	}
	return Valid{buf: buf}, nil
}

// Valid is a blob that has passed validation.
type Valid struct {
	buf []byte
}

// Bytes returns the validated bytes without copying.
func (b Valid) Bytes() []byte { return b.buf }

// Len returns the blob length.
func (b Valid) Len() int { return len(b.buf) }

// Decoder returns a cursor over the validated bytes.
func (b Valid) Decoder() *Decoder { return &Decoder{buf: b.buf} }

// Decoder walks a validated blob.
type Decoder struct {
	buf []byte
	pos int
}

// Len returns the length of the blob being decoded.
func (d *Decoder) Len() int { return len(d.buf) }

// Remaining returns the number of bytes not yet consumed.
func (d *Decoder) Remaining() int { return len(d.buf) - d.pos }

// Bytes consumes and returns the next n bytes.
func (d *Decoder) Bytes(n int) []byte { return take(d.buf, &d.pos, n) }

// Byte consumes one byte.
func (d *Decoder) Byte() byte { return d.Bytes(1)[0] }

// Peek returns the remaining bytes without consuming them.
func (d *Decoder) Peek() []byte { return d.buf[d.pos:] }

// Rest consumes and returns all remaining bytes.
func (d *Decoder) Rest() []byte { return d.Bytes(d.Remaining()) }

// Field consumes the next n bytes and returns a decoder over them.
func (d *Decoder) Field(n int) *Decoder { return &Decoder{buf: d.Bytes(n)} }

func take(buf []byte, pos *int, n int) []byte {
	if n < 0 || n > len(buf)-*pos {
		panic(fmt.Sprintf("blob: read of %d bytes at %d overruns blob of %d bytes", n, *pos, len(buf)))
	}
	p := buf[*pos : *pos+n : *pos+n]
	*pos += n
	return p
}
