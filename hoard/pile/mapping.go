package pile

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/joshuapare/hoardkit/internal/mmfile"
)

// Mapping is an immutable, reference-counted view of file bytes. The memory
// is unmapped when the last reference is released. Mappings are safe for
// concurrent use.
type Mapping struct {
	data  []byte
	refs  atomic.Int64
	unmap func() error
}

// NewMapping wraps data with one reference. unmap, if set, runs when the
// last reference is released.
func NewMapping(data []byte, unmap func() error) *Mapping {
	m := &Mapping{data: data, unmap: unmap}
	m.refs.Store(1)
	return m
}

// FromBytes returns a Mapping over an in-memory buffer.
func FromBytes(b []byte) *Mapping { return NewMapping(b, nil) }

// MapFile maps the first size bytes of f read-only. When prefault is set
// every page is touched up front so a truncated file fails here instead of
// faulting later.
func MapFile(f *os.File, size int64, prefault bool) (*Mapping, error) {
	data, unmap, err := mmfile.Map(f, size)
	if err != nil {
		return nil, fmt.Errorf("pile: map %s: %w", f.Name(), err)
	}
	if prefault {
		if err := mmfile.PreFault(data); err != nil {
			_ = unmap()
			return nil, fmt.Errorf("pile: map %s: %w", f.Name(), err)
		}
	}
	return NewMapping(data, unmap), nil
}

// Bytes returns the mapped bytes. They must not be modified.
func (m *Mapping) Bytes() []byte { return m.data }

// Len returns the mapping length.
func (m *Mapping) Len() int { return len(m.data) }

// Refs returns the current reference count.
func (m *Mapping) Refs() int64 { return m.refs.Load() }

// Retain adds a reference and returns m.
func (m *Mapping) Retain() *Mapping {
	if m.refs.Add(1) <= 1 {
		panic("pile: retain of released mapping")
	}
	return m
}

// Release drops a reference, unmapping the memory when it was the last.
func (m *Mapping) Release() error {
	n := m.refs.Add(-1)
	switch {
	case n > 0:
		return nil
	case n < 0:
		panic("pile: mapping released too many times")
	}
	m.data = nil
	if m.unmap != nil {
		return m.unmap()
	}
	return nil
}
