package blob

import "fmt"

// Range is a half-open byte range [Start, End) within a blob.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int { return r.End - r.Start }

func (r Range) shift(n int) Range { return Range{Start: r.Start + n, End: r.End + n} }

// Layout is the fixed serialized size of a type plus its optional niche.
type Layout struct {
	size     int
	niche    Range
	hasNiche bool
}

// New returns a layout of size bytes with no niche.
func New(size int) Layout {
	if size < 0 {
		panic(fmt.Sprintf("blob: negative layout size %d", size))
	}
	return Layout{size: size}
}

// NewNonZero returns a layout of size bytes whose whole encoding is never
// all zero, so the whole blob is the niche.
func NewNonZero(size int) Layout {
	if size <= 0 {
		panic(fmt.Sprintf("blob: non-zero layout needs a positive size, got %d", size))
	}
	return Layout{size: size, niche: Range{End: size}, hasNiche: true}
}

// WithNiche returns a layout of size bytes whose bytes in niche are never all
// zero.
func WithNiche(size int, niche Range) Layout {
	if niche.Start < 0 || niche.End > size || niche.Len() <= 0 {
		panic(fmt.Sprintf("blob: niche %v outside layout of size %d", niche, size))
	}
	return Layout{size: size, niche: niche, hasNiche: true}
}

// Size returns the number of bytes a blob of this layout occupies.
func (l Layout) Size() int { return l.size }

// Niche returns the niche range, if any.
func (l Layout) Niche() (Range, bool) { return l.niche, l.hasNiche }

// HasNiche reports whether the layout exposes a niche.
func (l Layout) HasNiche() bool { return l.hasNiche }

// Extend returns the layout of l followed by next, as for the fields of a
// struct. The first niche found is forwarded, shifted to its position in the
// combined blob.
func (l Layout) Extend(next Layout) Layout {
	out := Layout{size: l.size + next.size}
	switch {
	case l.hasNiche:
		out.niche, out.hasNiche = l.niche, true
	case next.hasNiche:
		out.niche, out.hasNiche = next.niche.shift(l.size), true
	}
	return out
}

// OptionLike returns the layout of a two-state sum type wrapping inner.
//
// When inner has a niche the result has inner's exact size: the absent state
// is encoded as all zero bytes. Otherwise one discriminant byte is prepended.
// In both cases the result has no niche of its own, because every bit pattern
// of the former niche is now taken.
func OptionLike(inner Layout) Layout {
	if inner.hasNiche {
		return Layout{size: inner.size}
	}
	return New(1).Extend(inner)
}

func (l Layout) String() string {
	if l.hasNiche {
		return fmt.Sprintf("Layout{size: %d, niche: [%d,%d)}", l.size, l.niche.Start, l.niche.End)
	}
	return fmt.Sprintf("Layout{size: %d}", l.size)
}
