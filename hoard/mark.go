package hoard

import (
	"github.com/joshuapare/hoardkit/internal/buf"
)

// MarkSize is the size of a commit mark.
const MarkSize = buf.WordSize

// markWord returns the only valid mark word for body slot i.
func markWord(slot int) uint64 { return ^uint64(slot) }

// validMark reports whether body slot i holds a valid mark.
func validMark(body []byte, slot int) bool {
	off := slot * MarkSize
	if slot < 0 || off+MarkSize > len(body) {
		return false
	}
	return buf.U64LE(body[off:]) == markWord(slot)
}

// markBytes encodes the mark for body slot i.
func markBytes(slot int) []byte {
	b := make([]byte, MarkSize)
	buf.PutU64LE(b, markWord(slot))
	return b
}

// MarkOffsets returns the body offsets of every valid mark in body, in
// file order.
func MarkOffsets(body []byte) []uint64 {
	var out []uint64
	for i := 0; i < len(body)/MarkSize; i++ {
		if validMark(body, i) {
			out = append(out, uint64(i*MarkSize))
		}
	}
	return out
}
