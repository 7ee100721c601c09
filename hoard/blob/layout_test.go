package blob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout_Extend(t *testing.T) {
	// No niche on either side.
	l := New(1).Extend(New(4))
	assert.Equal(t, 5, l.Size())
	assert.False(t, l.HasNiche())

	// The second field's niche is shifted past the first field.
	l = New(3).Extend(NewNonZero(8))
	require.True(t, l.HasNiche())
	niche, _ := l.Niche()
	assert.Equal(t, Range{Start: 3, End: 11}, niche)

	// The first niche wins.
	l = NewNonZero(2).Extend(NewNonZero(8))
	niche, _ = l.Niche()
	assert.Equal(t, Range{Start: 0, End: 2}, niche)
	assert.Equal(t, 10, l.Size())
}

func TestLayout_OptionLike(t *testing.T) {
	t.Run("inner with niche keeps its size", func(t *testing.T) {
		inner := NewNonZero(8)
		opt := OptionLike(inner)
		assert.Equal(t, inner.Size(), opt.Size())
		assert.False(t, opt.HasNiche(), "absent state consumes the niche")
	})

	t.Run("inner without niche gains one byte", func(t *testing.T) {
		inner := New(8)
		assert.Equal(t, 9, OptionLike(inner).Size())
	})

	t.Run("zero sized inner", func(t *testing.T) {
		assert.Equal(t, 1, OptionLike(New(0)).Size())
	})

	t.Run("nested options", func(t *testing.T) {
		// Option<Option<NonZero>>: the outer level has no niche to reuse.
		assert.Equal(t, 9, OptionLike(OptionLike(NewNonZero(8))).Size())
		// Option<Option<()>> is two discriminant bytes.
		assert.Equal(t, 2, OptionLike(OptionLike(New(0))).Size())
	})

	t.Run("niche forwarded through a struct", func(t *testing.T) {
		// struct { u32; NonZero64 } exposes the pointer niche, so an
		// option of it costs nothing.
		st := New(4).Extend(NewNonZero(8))
		assert.Equal(t, 12, OptionLike(st).Size())
	})
}

func TestLayout_Panics(t *testing.T) {
	assert.Panics(t, func() { New(-1) })
	assert.Panics(t, func() { NewNonZero(0) })
	assert.Panics(t, func() { WithNiche(4, Range{Start: 2, End: 6}) })
	assert.Panics(t, func() { WithNiche(4, Range{Start: 2, End: 2}) })
	assert.NotPanics(t, func() { WithNiche(4, Range{Start: 2, End: 4}) })
}

func TestLayout_String(t *testing.T) {
	assert.Equal(t, "Layout{size: 4}", New(4).String())
	assert.Equal(t, "Layout{size: 8, niche: [0,8)}", NewNonZero(8).String())
}
