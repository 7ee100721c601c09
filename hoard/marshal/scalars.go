package marshal

import (
	"github.com/joshuapare/hoardkit/hoard/blob"
	"github.com/joshuapare/hoardkit/internal/buf"
)

// Reference codecs for primitive scalars. Integers are little-endian.
var (
	Unit       Codec[struct{}] = unitCodec{}
	Bool       Codec[bool]     = boolCodec{}
	U8         Codec[uint8]    = u8Codec{}
	U16        Codec[uint16]   = u16Codec{}
	U32        Codec[uint32]   = u32Codec{}
	U64        Codec[uint64]   = u64Codec{}
	NonZeroU64 Codec[uint64]   = nonZeroU64Codec{}
	Bytes      Unsized[[]byte] = bytesCodec{}
)

type unitCodec struct{}

func (unitCodec) Layout() blob.Layout            { return blob.New(0) }
func (unitCodec) Validate(*blob.Validator) error { return nil }
func (unitCodec) Decode(*blob.Decoder) struct{}  { return struct{}{} }
func (unitCodec) Encode(*struct{}) State         { return Leaf(func(*blob.Writer) {}) }

type boolCodec struct{}

func (boolCodec) Layout() blob.Layout { return blob.New(1) }

func (boolCodec) Validate(v *blob.Validator) error {
	if b := v.Byte(); b > 1 {
		return &blob.DiscriminantError{Got: b}
	}
	return nil
}

func (boolCodec) Decode(d *blob.Decoder) bool { return d.Byte() == 1 }

func (boolCodec) Encode(v *bool) State {
	val := *v
	return Leaf(func(w *blob.Writer) {
		if val {
			_ = w.WriteByte(1)
		} else {
			_ = w.WriteByte(0)
		}
	})
}

type u8Codec struct{}

func (u8Codec) Layout() blob.Layout              { return blob.New(1) }
func (u8Codec) Validate(v *blob.Validator) error { v.Byte(); return nil }
func (u8Codec) Decode(d *blob.Decoder) uint8     { return d.Byte() }

func (u8Codec) Encode(v *uint8) State {
	val := *v
	return Leaf(func(w *blob.Writer) { _ = w.WriteByte(val) })
}

type u16Codec struct{}

func (u16Codec) Layout() blob.Layout              { return blob.New(2) }
func (u16Codec) Validate(v *blob.Validator) error { v.Bytes(2); return nil }
func (u16Codec) Decode(d *blob.Decoder) uint16    { return buf.U16LE(d.Bytes(2)) }

func (u16Codec) Encode(v *uint16) State {
	val := *v
	return Leaf(func(w *blob.Writer) {
		var tmp [2]byte
		buf.PutU16LE(tmp[:], val)
		w.WriteBytes(tmp[:])
	})
}

type u32Codec struct{}

func (u32Codec) Layout() blob.Layout              { return blob.New(4) }
func (u32Codec) Validate(v *blob.Validator) error { v.Bytes(4); return nil }
func (u32Codec) Decode(d *blob.Decoder) uint32    { return buf.U32LE(d.Bytes(4)) }

func (u32Codec) Encode(v *uint32) State {
	val := *v
	return Leaf(func(w *blob.Writer) {
		var tmp [4]byte
		buf.PutU32LE(tmp[:], val)
		w.WriteBytes(tmp[:])
	})
}

type u64Codec struct{}

func (u64Codec) Layout() blob.Layout              { return blob.New(8) }
func (u64Codec) Validate(v *blob.Validator) error { v.Bytes(8); return nil }
func (u64Codec) Decode(d *blob.Decoder) uint64    { return buf.U64LE(d.Bytes(8)) }
func (u64Codec) Encode(v *uint64) State           { return encodeU64(*v) }

func encodeU64(val uint64) State {
	return Leaf(func(w *blob.Writer) {
		var tmp [8]byte
		buf.PutU64LE(tmp[:], val)
		w.WriteBytes(tmp[:])
	})
}

// nonZeroU64Codec stores a uint64 that is never zero, which makes its whole
// encoding a niche.
type nonZeroU64Codec struct{}

func (nonZeroU64Codec) Layout() blob.Layout { return blob.NewNonZero(8) }

func (nonZeroU64Codec) Validate(v *blob.Validator) error {
	if buf.AllZero(v.Bytes(8)) {
		return ErrZero
	}
	return nil
}

func (nonZeroU64Codec) Decode(d *blob.Decoder) uint64 { return buf.U64LE(d.Bytes(8)) }

func (nonZeroU64Codec) Encode(v *uint64) State {
	if *v == 0 {
		panic(ErrZero)
	}
	return encodeU64(*v)
}

// bytesCodec stores a byte string whose length is pointer metadata. Decoded
// slices alias the underlying blob and must not be modified.
type bytesCodec struct{}

func (bytesCodec) Layout() blob.Layout            { return blob.New(0) }
func (bytesCodec) Validate(*blob.Validator) error { return nil }
func (bytesCodec) Decode(d *blob.Decoder) []byte  { return d.Rest() }
func (bytesCodec) Metadata(v *[]byte) uint64      { return uint64(len(*v)) }

func (bytesCodec) LayoutFor(meta uint64) (blob.Layout, error) {
	n, err := checkedLen(meta)
	if err != nil {
		return blob.Layout{}, err
	}
	return blob.New(n), nil
}

func (bytesCodec) Encode(v *[]byte) State {
	val := *v
	return Leaf(func(w *blob.Writer) { w.WriteBytes(val) })
}
