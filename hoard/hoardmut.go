package hoard

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joshuapare/hoardkit/hoard/marshal"
	"github.com/joshuapare/hoardkit/hoard/offset"
	"github.com/joshuapare/hoardkit/internal/durable"
)

// HoardMut is a hoard opened for appending. There must be at most one
// HoardMut per file. It is not safe for concurrent use.
type HoardMut struct {
	*Hoard

	end  int64 // file size as last written by us
	inTx bool
}

// Create creates a new hoard at path. It fails if the file exists.
func Create(path string, opts *Options) (*HoardMut, error) {
	opts = opts.withDefaults()
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("hoard: create: %w", err)
	}
	header := NewHeader(opts.Flavor)
	if _, err := f.WriteAt(header.Bytes(), 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("hoard: write header: %w", err)
	}
	if err := durable.Commit(context.Background(), f, opts.FlushMode); err != nil {
		f.Close()
		return nil, err
	}
	h, err := OpenMutFile(f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	return h, nil
}

// OpenMut opens an existing hoard at path for appending.
func OpenMut(path string, opts *Options) (*HoardMut, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("hoard: open: %w", err)
	}
	h, err := OpenMutFile(f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	return h, nil
}

// OpenMutFile checks the header of f, which must be open for reading and
// writing, and positions at end of file. The HoardMut takes ownership of f.
func OpenMutFile(f *os.File, opts *Options) (*HoardMut, error) {
	h, err := OpenFile(f, opts)
	if err != nil {
		return nil, err
	}
	end, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("hoard: seek: %w", err)
	}
	return &HoardMut{Hoard: h, end: end}, nil
}

// Begin starts a transaction that appends after everything written so far.
func (h *HoardMut) Begin() (*Tx, error) {
	if h.f == nil {
		return nil, ErrClosed
	}
	if h.inTx {
		return nil, ErrTxActive
	}
	h.inTx = true
	cursor := alignUp(h.end - HeaderSize)
	return &Tx{h: h, start: cursor, cursor: cursor, last: -1}, nil
}

// PushRoot saves v and everything it points to and commits v as the newest
// root. It returns the offset of v's blob.
func PushRoot[T any](ctx context.Context, h *HoardMut, c marshal.Codec[T], v *T) (offset.Offset, error) {
	if _, ok := c.(marshal.Unsized[T]); ok {
		return offset.Offset{}, ErrUnsizedRoot
	}
	tx, err := h.Begin()
	if err != nil {
		return offset.Offset{}, err
	}
	off, stats, err := marshal.SaveWithStats(tx, c, v)
	if err != nil {
		tx.Rollback()
		return offset.Offset{}, err
	}
	if _, err := tx.CommitRoot(ctx, c.Layout().Size()); err != nil {
		tx.Rollback()
		return offset.Offset{}, err
	}
	h.log.Debug("hoard root pushed",
		"offset", off.Get(),
		"blobs", stats.Blobs,
		"bytes", stats.Bytes)
	return off, nil
}

func alignUp(n int64) int64 { return (n + MarkSize - 1) &^ (MarkSize - 1) }
