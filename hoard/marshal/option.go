package marshal

import (
	"github.com/joshuapare/hoardkit/hoard/blob"
	"github.com/joshuapare/hoardkit/internal/buf"
)

// Option is a value that may be absent.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns a present Option holding v.
func Some[T any](v T) Option[T] { return Option[T]{value: v, ok: true} }

// None returns an absent Option.
func None[T any]() Option[T] { return Option[T]{} }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.value, o.ok }

// IsSome reports whether the value is present.
func (o Option[T]) IsSome() bool { return o.ok }

// Ref returns a pointer to the held value, or nil when absent.
func (o *Option[T]) Ref() *T {
	if !o.ok {
		return nil
	}
	return &o.value
}

// OptionOf returns the codec for Option[T].
//
// When inner's layout has a niche the option costs no space: absent is all
// zero bytes, present is any encoding whose niche bytes are not all zero.
// Otherwise a leading discriminant byte (0 absent, 1 present) is added. In
// both encodings an absent value must have every remaining byte zero.
func OptionOf[T any](inner Codec[T]) Codec[Option[T]] {
	return optionCodec[T]{inner: inner}
}

type optionCodec[T any] struct {
	inner Codec[T]
}

func (c optionCodec[T]) Layout() blob.Layout {
	return blob.OptionLike(c.inner.Layout())
}

func (c optionCodec[T]) Validate(v *blob.Validator) error {
	if niche, ok := c.inner.Layout().Niche(); ok {
		b := v.Peek()
		if buf.AllZero(b[niche.Start:niche.End]) {
			if !buf.AllZero(v.Rest()) {
				return blob.ErrPadding
			}
			return nil
		}
		return ValidateField(v, c.inner)
	}

	switch d := v.Byte(); d {
	case 0:
		if !buf.AllZero(v.Rest()) {
			return blob.ErrPadding
		}
		return nil
	case 1:
		return ValidateField(v, c.inner)
	default:
		return &blob.DiscriminantError{Got: d}
	}
}

func (c optionCodec[T]) Decode(d *blob.Decoder) Option[T] {
	if niche, ok := c.inner.Layout().Niche(); ok {
		b := d.Peek()
		if buf.AllZero(b[niche.Start:niche.End]) {
			d.Rest()
			return None[T]()
		}
		return Some(DecodeField(d, c.inner))
	}

	switch disc := d.Byte(); disc {
	case 0:
		d.Rest()
		return None[T]()
	case 1:
		return Some(DecodeField(d, c.inner))
	default:
		panic(&blob.DiscriminantError{Got: disc})
	}
}

func (c optionCodec[T]) Encode(v *Option[T]) State {
	_, niche := c.inner.Layout().Niche()
	size := c.inner.Layout().Size()
	if !v.ok {
		return Leaf(func(w *blob.Writer) {
			if !niche {
				_ = w.WriteByte(0)
			}
			w.WritePadding(size)
		})
	}
	return &optionState{inner: c.inner.Encode(&v.value), size: size, tagged: !niche}
}

type optionState struct {
	inner  State
	size   int
	tagged bool
}

func (s *optionState) Poll() *Job { return s.inner.Poll() }

func (s *optionState) EncodeBlob(w *blob.Writer) {
	if s.tagged {
		_ = w.WriteByte(1)
	}
	EncodeField(w, s.size, s.inner)
}
