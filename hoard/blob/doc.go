// Package blob implements the byte-level half of the hoard marshalling
// protocol: fixed blob layouts with optional niches, and the cursors used to
// validate, decode and encode a blob.
//
// # Layouts
//
// Every type stored in a hoard has a fixed serialized size described by a
// Layout. A layout may expose a niche: a contiguous byte range that is never
// all zero in any valid encoding. Sum types reuse that range to encode their
// "absent" state without an extra discriminant byte:
//
//	inner := blob.NewNonZero(8)    // size 8, niche [0,8)
//	opt := blob.OptionLike(inner)  // size 8, absent = all zero
//
//	plain := blob.New(8)           // size 8, no niche
//	opt = blob.OptionLike(plain)   // size 9, leading discriminant byte
//
// # Validate, then decode
//
// Bytes read from a file are untrusted. Validate runs a structural check over
// them and is the only way to obtain a Valid blob; Valid.Decoder is the only
// way to decode. Decoding code can therefore assume every byte it reads has
// already been checked:
//
//	valid, err := blob.Validate(raw, layout, check)
//	if err != nil {
//	    return err // *DiscriminantError, ErrPadding, *ValueError, *SizeError
//	}
//	d := valid.Decoder()
//
// Validation failures are ordinary errors. Codec bugs (reading past the end
// of a cursor, writing the wrong number of bytes) panic.
package blob
