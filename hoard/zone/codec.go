package zone

import (
	"fmt"

	"github.com/joshuapare/hoardkit/hoard/blob"
	"github.com/joshuapare/hoardkit/hoard/marshal"
	"github.com/joshuapare/hoardkit/hoard/offset"
	"github.com/joshuapare/hoardkit/internal/buf"
)

// OwnOf returns the codec of an owned pointer to values of c.
//
// The blob is the tagged pointer word, followed by an 8-byte metadata word
// when c is unsized. The pointer word is never zero, so an Option of an Own
// costs no space. Validation checks the pointer's shape only; the pointee is
// validated when it is loaded.
func OwnOf[T any](c marshal.Codec[T]) marshal.Codec[*Own[T]] {
	_, unsized := c.(marshal.Unsized[T])
	return ownCodec[T]{inner: c, unsized: unsized}
}

type ownCodec[T any] struct {
	inner   marshal.Codec[T]
	unsized bool
}

func (c ownCodec[T]) Layout() blob.Layout {
	if c.unsized {
		return offset.Layout.Extend(blob.New(buf.WordSize))
	}
	return offset.Layout
}

func (c ownCodec[T]) Validate(v *blob.Validator) error {
	if err := offset.Validate(v); err != nil {
		return err
	}
	if !c.unsized {
		return nil
	}
	meta := buf.U64LE(v.Bytes(buf.WordSize))
	if _, err := marshal.LayoutOf(c.inner, meta); err != nil {
		return fmt.Errorf("zone: pointer metadata %d: %w", meta, err)
	}
	return nil
}

func (c ownCodec[T]) Decode(d *blob.Decoder) *Own[T] {
	off := offset.Decode(d)
	var meta uint64
	if c.unsized {
		meta = buf.U64LE(d.Bytes(buf.WordSize))
	}
	return Persisted[T](off, meta)
}

func (c ownCodec[T]) Encode(v **Own[T]) marshal.State {
	o := *v
	o.check()
	return &ownState[T]{own: o, inner: c.inner, unsized: c.unsized}
}

type ownState[T any] struct {
	own     *Own[T]
	inner   marshal.Codec[T]
	unsized bool
}

// Poll returns the Own's save job until the value has an offset. The job
// lives on the Own, so fields sharing one Own share one write.
func (s *ownState[T]) Poll() *marshal.Job {
	o := s.own
	if o.fat.Raw.Kind() == offset.KindOffset {
		return nil
	}
	if o.job == nil {
		l, err := marshal.LayoutOf(s.inner, o.fat.Meta)
		if err != nil {
			panic(err)
		}
		o.job = marshal.NewJob(s.inner.Encode(o.ref()), l.Size(), o.persist)
	}
	return o.job
}

func (s *ownState[T]) EncodeBlob(w *blob.Writer) {
	off, ok := s.own.fat.Raw.Offset()
	if !ok {
		panic("zone: encoding pointer to unsaved value")
	}
	off.Encode(w)
	if s.unsized {
		var tmp [buf.WordSize]byte
		buf.PutU64LE(tmp[:], s.own.fat.Meta)
		w.WriteBytes(tmp[:])
	}
}
