// Package pile exposes mapped hoard bytes as a read-only address space.
//
// A Mapping owns the mapped memory and is shared by reference count. A
// Snapshot is a window [start, end) into a Mapping that can only shrink, and
// a Pile is the byte range of a Snapshot that offsets are resolved against.
package pile
