// Package zone provides owned pointers that live either in an in-process
// arena or in a persisted hoard body.
//
// An Own starts out Transient: Alloc stores the value in a Heap slot and the
// pointer word holds the slot handle. Saving the Own through its codec
// writes the value as a blob, frees the slot and turns the pointer into an
// Offset. Persisted pointers are resolved through a Zone, which hands back
// raw bytes that are validated before anything is decoded from them.
//
// # Sharing
//
// Two fields may point at the same Own. The pending save is kept on the
// Own, so a graph saved through both fields writes the value once and both
// fields receive the same offset.
//
// # Example
//
//	h := zone.NewHeap()
//	own := zone.Alloc(h, marshal.U32, 42)
//	v, _ := zone.Get(nil, marshal.U32, own)
package zone
