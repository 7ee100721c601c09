package hoard

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/joshuapare/hoardkit/hoard/pile"
)

// Hoard is a hoard file opened for reading. Snapshots taken from it may be
// used concurrently; the Hoard itself is not safe for concurrent use.
type Hoard struct {
	f       *os.File
	header  Header
	opts    *Options
	log     *slog.Logger
	mapping *pile.Mapping
}

// Open opens the hoard at path read-only.
func Open(path string, opts *Options) (*Hoard, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("hoard: open: %w", err)
	}
	h, err := OpenFile(f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	return h, nil
}

// OpenFile reads and checks the header of f. The Hoard takes ownership of f
// and closes it on Close.
func OpenFile(f *os.File, opts *Options) (*Hoard, error) {
	opts = opts.withDefaults()
	header, err := ReadHeader(f)
	if err != nil {
		return nil, err
	}
	if header.Flavor != opts.Flavor {
		return nil, fmt.Errorf("%w: file has %d, want %d", ErrFlavor, header.Flavor, opts.Flavor)
	}
	h := &Hoard{f: f, header: header, opts: opts, log: opts.Logger}
	h.log.Debug("hoard opened",
		"path", f.Name(),
		"file_id", header.FileID.String(),
		"flavor", header.Flavor)
	return h, nil
}

// Header returns the file header.
func (h *Hoard) Header() Header { return h.header }

// FileID returns the random id assigned when the file was created.
func (h *Hoard) FileID() uuid.UUID { return h.header.FileID }

// Snapshot maps the file as it is now and returns a snapshot of its body.
// The file is remapped only when it has grown since the last call. The
// caller must Close the snapshot.
func (h *Hoard) Snapshot() (*pile.Snapshot, error) {
	if h.f == nil {
		return nil, ErrClosed
	}
	info, err := h.f.Stat()
	if err != nil {
		return nil, fmt.Errorf("hoard: stat: %w", err)
	}
	size := info.Size()
	if size < HeaderSize {
		return nil, fmt.Errorf("%w: file shrank to %d bytes", ErrTruncatedHeader, size)
	}
	if h.mapping == nil || int64(h.mapping.Len()) != size {
		m, err := pile.MapFile(h.f, size, h.opts.PreFault)
		if err != nil {
			return nil, fmt.Errorf("hoard: %w", err)
		}
		if h.mapping != nil {
			if err := h.mapping.Release(); err != nil {
				h.log.Warn("hoard unmap failed", "error", err)
			}
		}
		h.mapping = m
		h.log.Debug("hoard mapped", "path", h.f.Name(), "size", size)
	}
	return pile.NewSnapshot(h.mapping, HeaderSize)
}

// Close releases the Hoard's mapping and closes the file. Snapshots still
// open keep their mapping alive.
func (h *Hoard) Close() error {
	if h.f == nil {
		return ErrClosed
	}
	var mapErr error
	if h.mapping != nil {
		mapErr = h.mapping.Release()
		h.mapping = nil
	}
	err := h.f.Close()
	h.f = nil
	if err != nil {
		return fmt.Errorf("hoard: close: %w", err)
	}
	return mapErr
}
