// Package hoard implements the append-only hoard file and its root log.
//
// # Overview
//
// A hoard file holds a graph of values written by marshal.Save. Nothing is
// ever rewritten in place: every commit appends blobs and then a commit mark
// that publishes the newest root. Readers map the file read-only and see a
// consistent prefix of what the writer produced, so any number of readers
// can run next to one writer without locking.
//
// # File Layout
//
//	offset 0   header   32 bytes: magic "hoard\0\0\0", version u32,
//	                    flavor u32, file id (UUID)
//	offset 32  body     blobs, each zero padded to an 8-byte boundary,
//	                    and after each root an 8-byte commit mark
//
// Body offsets are relative to the end of the header. An empty blob takes
// no space and reports the current cursor. The mark stored in body slot i
// (body offset 8*i) is the word ^i; a mark whose word does not match its
// slot is not a mark. A root is the blob that ends at its mark, so a root
// of size s committed by the mark in slot i starts at 8*i - align8(s).
//
// # Writing
//
//   - Create / OpenMut: open for appending, positioned at end of file
//   - HoardMut.Begin: start a Tx, which is the marshal.Sink blobs go to
//   - Tx.Commit / Tx.CommitRoot: append the mark and sync per FlushMode
//   - Tx.Rollback: abandon; written blobs stay in the file, unmarked
//   - PushRoot: save a value graph and commit it as the newest root
//
// # Reading
//
//   - Open / OpenFile: read and check the header
//   - Hoard.Snapshot: map the file and return its body
//   - Roots / RootsOf: iterate roots oldest first (Next, All) or newest
//     first (NextBack, Backward)
//   - Root.Value: validate the root blob and its padding, then decode it
//   - Root.Pile: the body as of the root's commit, for resolving pointers
//
// # Usage Example
//
//	h, err := hoard.Open(path, nil)
//	if err != nil {
//	    return err
//	}
//	defer h.Close()
//
//	snap, err := h.Snapshot()
//	if err != nil {
//	    return err
//	}
//	defer snap.Close()
//
//	for root := range hoard.RootsOf(h, snap, codec).Backward() {
//	    v, err := root.Value()
//	    ...
//	}
//
// # Crash Behaviour
//
// A writer interrupted before its mark leaves blobs no mark refers to. They
// are inert: root iteration skips any slot whose word is not a valid mark,
// so a torn tail reads as "no root here" rather than as an error.
package hoard
