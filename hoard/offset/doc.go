// Package offset defines the persisted and dual-mode pointer words used by
// the hoard.
//
// An Offset is a byte position within a hoard body, stored as the tagged
// little-endian word (offset << 1) | 1. The low bit is always set, so no
// Offset is ever the all-zero word and the whole 8-byte encoding is a niche.
//
// A Ptr carries either an Offset or a Transient arena handle in one word. The
// low tag bit tells them apart: 1 for Offset, 0 for Transient (handles are
// stored as slot << 1).
package offset
