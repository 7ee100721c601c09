// Package buf contains endian and bounds helpers shared by the blob codecs
// and the hoard file layer.
package buf

import "encoding/binary"

// WordSize is the size of one body word. Blob writes are padded to it and
// every trailer mark occupies exactly one word.
const WordSize = 8

// U16LE reads a little-endian uint16 from b. Returns 0 when b is too short.
func U16LE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U32LE reads a little-endian uint32 from b. Returns 0 when b is too short.
func U32LE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// U64LE reads a little-endian uint64 from b. Returns 0 when b is too short.
func U64LE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// PutU16LE writes v at b[0:2]. Short buffers are left untouched.
func PutU16LE(b []byte, v uint16) {
	if len(b) < 2 {
		return
	}
	binary.LittleEndian.PutUint16(b, v)
}

// PutU32LE writes v at b[0:4]. Short buffers are left untouched.
func PutU32LE(b []byte, v uint32) {
	if len(b) < 4 {
		return
	}
	binary.LittleEndian.PutUint32(b, v)
}

// PutU64LE writes v at b[0:8]. Short buffers are left untouched.
func PutU64LE(b []byte, v uint64) {
	if len(b) < 8 {
		return
	}
	binary.LittleEndian.PutUint64(b, v)
}

// Align8 returns n aligned up to the next word boundary.
//
//	Align8(0) = 0
//	Align8(1) = 8
//	Align8(8) = 8
//	Align8(9) = 16
func Align8(n int) int {
	return (n + WordSize - 1) &^ (WordSize - 1)
}

// AllZero reports whether every byte of b is zero.
func AllZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
