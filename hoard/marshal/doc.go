// Package marshal defines typed codecs over fixed-layout blobs and the
// resumable save scheduler that flushes a pointer graph to an append-only
// sink.
//
// # Overview
//
// Every stored type has a Codec: a plain value that knows the type's blob
// layout and how to validate, decode and encode it. Codecs are passed
// explicitly, so the same Go type can have more than one encoding.
//
// # Codec Interface
//
//   - Layout(): fixed size and optional niche of the blob
//   - Validate(v): structural checks over untrusted bytes; pointers are
//     checked for shape only
//   - Decode(d): build a value from bytes that passed Validate
//   - Encode(v): start encoding, returning a State
//
// Unsized codecs, such as Bytes, add Metadata and LayoutFor: the blob size
// then depends on metadata carried by the pointer to the value.
//
// # Reference Codecs
//
//   - Unit, Bool, U8, U16, U32, U64: little-endian scalars
//   - NonZeroU64: a u64 that is never zero, so its whole blob is a niche
//   - Bytes: an unsized byte string decoded without copying
//   - OptionOf(c): an optional value, free when c has a niche
//
// # Saving
//
// A value's blob can hold the offset of a child only once the child has been
// written. State.Poll reports a child Job that must be written first, or nil
// once the value is ready. Drive keeps an explicit stack of jobs:
//
//	push root
//	loop: poll top
//	      child pending -> push child
//	      otherwise     -> encode top, write it, record its offset, pop
//
// Each job is written exactly once and every blob only refers back to blobs
// written before it. A sink error stops the walk; jobs already written stay
// done, so driving the same root again resumes where it stopped.
//
// # Usage Example
//
//	c := marshal.OptionOf(marshal.NonZeroU64)
//	v := marshal.Some[uint64](7)
//
//	var buf marshal.Buffer
//	off, err := marshal.Save(&buf, c, &v)
//	if err != nil {
//	    return err
//	}
//
//	got, err := marshal.DecodeBlob(c, buf.Bytes()[off.Get():][:8], 0)
package marshal
