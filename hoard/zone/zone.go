package zone

import (
	"fmt"

	"github.com/joshuapare/hoardkit/hoard/marshal"
	"github.com/joshuapare/hoardkit/hoard/offset"
)

// Zone resolves persisted offsets to raw, untrusted bytes.
type Zone interface {
	// Fetch returns the n bytes at off. The bytes must be validated before
	// use.
	Fetch(off offset.Offset, n int) ([]byte, error)
}

// Missing is the zone of absent data. Every fetch fails with ErrMissing.
type Missing struct{}

// Fetch always fails.
func (Missing) Fetch(off offset.Offset, n int) ([]byte, error) {
	return nil, fmt.Errorf("%d bytes at %v: %w", n, off, ErrMissing)
}

// AllocMissing records only v's metadata, finalizing v. The returned pointer
// can never be resolved.
func AllocMissing[T any](c marshal.Codec[T], v T) FatPtr[T] {
	meta := marshal.MetadataOf(c, &v)
	if f, ok := any(&v).(Finalizer); ok {
		f.Finalize()
	} else if f, ok := any(v).(Finalizer); ok {
		f.Finalize()
	}
	return FatPtr[T]{Meta: meta}
}

// Get returns the value o points at. Transient values are read from the
// heap; persisted ones are fetched from z, validated, then decoded.
func Get[T any](z Zone, c marshal.Codec[T], o *Own[T]) (T, error) {
	o.check()
	off, ok := o.fat.Raw.Offset()
	if !ok {
		return o.transient(), nil
	}
	return Load(z, c, off, o.fat.Meta)
}

// Take consumes o and returns its value.
func Take[T any](z Zone, c marshal.Codec[T], o *Own[T]) (T, error) {
	o.check()
	if o.fat.Raw.Kind() == offset.KindTransient {
		return o.TryTake()
	}
	v, err := Get(z, c, o)
	if err != nil {
		return v, err
	}
	o.released = true
	return v, nil
}

// Load fetches, validates and decodes the value of c stored at off.
func Load[T any](z Zone, c marshal.Codec[T], off offset.Offset, meta uint64) (T, error) {
	var zero T
	if z == nil {
		return zero, ErrNoZone
	}
	l, err := marshal.LayoutOf(c, meta)
	if err != nil {
		return zero, fmt.Errorf("zone: load %v: %w", off, err)
	}
	raw, err := z.Fetch(off, l.Size())
	if err != nil {
		return zero, fmt.Errorf("zone: fetch: %w", err)
	}
	v, err := marshal.DecodeBlob(c, raw, meta)
	if err != nil {
		return zero, fmt.Errorf("zone: load %v: %w", off, err)
	}
	return v, nil
}
