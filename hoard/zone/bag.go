package zone

import (
	"github.com/joshuapare/hoardkit/hoard/marshal"
	"github.com/joshuapare/hoardkit/hoard/offset"
)

// Bag is an owned pointer bundled with the zone and codec needed to resolve
// it.
type Bag[T any] struct {
	own   *Own[T]
	zone  Zone
	codec marshal.Codec[T]
}

// NewBag allocates v in h. z resolves the value once it has been saved.
func NewBag[T any](z Zone, h *Heap, c marshal.Codec[T], v T) *Bag[T] {
	return &Bag[T]{own: Alloc(h, c, v), zone: z, codec: c}
}

// LoadBag returns a Bag of the value persisted in z at off.
func LoadBag[T any](z Zone, c marshal.Codec[T], off offset.Offset, meta uint64) *Bag[T] {
	return &Bag[T]{own: Persisted[T](off, meta), zone: z, codec: c}
}

// Own returns the bag's pointer.
func (b *Bag[T]) Own() *Own[T] { return b.own }

// Get returns the value.
func (b *Bag[T]) Get() (T, error) { return Get(b.zone, b.codec, b.own) }

// Take consumes the bag and returns the value.
func (b *Bag[T]) Take() (T, error) { return Take(b.zone, b.codec, b.own) }

// Save writes the value and its unsaved children to s and returns the
// offset of the value.
func (b *Bag[T]) Save(s marshal.Sink) (offset.Offset, error) {
	oc := OwnOf(b.codec)
	state := oc.Encode(&b.own)
	if job := state.Poll(); job != nil {
		if _, err := marshal.Drive(s, job); err != nil {
			return offset.Offset{}, err
		}
	}
	off, _ := b.own.fat.Raw.Offset()
	return off, nil
}
