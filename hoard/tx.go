package hoard

import (
	"context"
	"fmt"

	"github.com/joshuapare/hoardkit/hoard/offset"
	"github.com/joshuapare/hoardkit/internal/buf"
	"github.com/joshuapare/hoardkit/internal/durable"
)

// Tx appends blobs to a hoard and publishes them with a commit mark.
//
// Blobs are written straight to the file but stay invisible to root
// iteration until Commit appends the mark. Commit follows an ordered flush:
// the blobs are made durable (in durable.FlushFull mode) before the mark is
// written, then the mark is synced.
//
// A Tx implements marshal.Sink. It is not safe for concurrent use.
type Tx struct {
	h      *HoardMut
	start  int64 // body cursor at Begin
	cursor int64 // body offset of the next blob
	last   int   // length of the most recent blob, -1 before any
	done   bool
}

// WriteBlob appends p at the cursor and pads it with zeros to the next
// 8-byte boundary. An empty blob takes no space and reports the cursor.
func (tx *Tx) WriteBlob(p []byte) (offset.Offset, error) {
	if tx.done {
		return offset.Offset{}, ErrTxDone
	}
	off, ok := offset.New(uint64(tx.cursor))
	if !ok {
		return offset.Offset{}, &offset.RangeError{Value: uint64(tx.cursor)}
	}
	tx.last = len(p)
	if len(p) == 0 {
		return off, nil
	}
	padded := p
	if n := buf.Align8(len(p)); n != len(p) {
		padded = make([]byte, n)
		copy(padded, p)
	}
	if _, err := tx.h.f.WriteAt(padded, HeaderSize+tx.cursor); err != nil {
		return offset.Offset{}, fmt.Errorf("hoard: write blob at %v: %w", off, err)
	}
	tx.cursor += int64(len(padded))
	tx.h.end = max(tx.h.end, HeaderSize+tx.cursor)
	return off, nil
}

// Cursor returns the body offset the next blob will be written at.
func (tx *Tx) Cursor() uint64 { return uint64(tx.cursor) }

// Written returns the number of body bytes written by this transaction.
func (tx *Tx) Written() int64 { return tx.cursor - tx.start }

// Commit appends the commit mark at the cursor and syncs according to the
// hoard's flush mode. It returns the body offset of the mark.
//
// Readers locate the root as the blob ending at the mark, so the blob
// written last must be the root. Commit does not check this; CommitRoot
// does.
func (tx *Tx) Commit(ctx context.Context) (uint64, error) {
	if tx.done {
		return 0, ErrTxDone
	}
	tx.finish()

	h := tx.h
	mode := h.opts.FlushMode
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := durable.Barrier(ctx, h.f, mode); err != nil {
		return 0, fmt.Errorf("hoard: commit: %w", err)
	}

	markOff := tx.cursor
	slot := int(markOff / MarkSize)
	if _, err := h.f.WriteAt(markBytes(slot), HeaderSize+markOff); err != nil {
		return 0, fmt.Errorf("hoard: write mark: %w", err)
	}
	h.end = max(h.end, HeaderSize+markOff+MarkSize)

	if err := durable.Commit(ctx, h.f, mode); err != nil {
		return 0, fmt.Errorf("hoard: commit: %w", err)
	}
	h.log.Debug("hoard commit",
		"mark", markOff,
		"written", tx.Written(),
		"flush", mode.String())
	return uint64(markOff), nil
}

// CommitRoot is Commit for a root blob of size bytes. It fails with
// ErrRootPlacement, leaving the transaction open, unless the blob written
// last has exactly that size. A zero-size root needs no blob.
func (tx *Tx) CommitRoot(ctx context.Context, size int) (uint64, error) {
	if tx.done {
		return 0, ErrTxDone
	}
	if size > 0 && tx.last != size {
		return 0, fmt.Errorf("%w: last blob is %d bytes, root needs %d", ErrRootPlacement, tx.last, size)
	}
	return tx.Commit(ctx)
}

// Rollback abandons the transaction. Blobs already written stay in the file
// but no mark refers to them.
func (tx *Tx) Rollback() {
	if tx.done {
		return
	}
	tx.finish()
	tx.h.log.Debug("hoard rollback", "abandoned", tx.Written())
}

func (tx *Tx) finish() {
	tx.done = true
	tx.h.inTx = false
}
