package marshal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hoardkit/hoard/blob"
)

func encodeOK[T any](t *testing.T, c Codec[T], v T) []byte {
	t.Helper()
	p, err := Encode(c, &v)
	require.NoError(t, err)
	return p
}

func TestOption_Encodings(t *testing.T) {
	unit := OptionOf(Unit)
	assert.Equal(t, []byte{0}, encodeOK(t, unit, None[struct{}]()))
	assert.Equal(t, []byte{1}, encodeOK(t, unit, Some(struct{}{})))

	u8 := OptionOf(U8)
	assert.Equal(t, []byte{0, 0}, encodeOK(t, u8, None[uint8]()))
	assert.Equal(t, []byte{1, 24}, encodeOK(t, u8, Some[uint8](24)))

	nested := OptionOf(OptionOf(Unit))
	assert.Equal(t, []byte{0, 0}, encodeOK(t, nested, None[Option[struct{}]]()))
	assert.Equal(t, []byte{1, 0}, encodeOK(t, nested, Some(None[struct{}]())))
	assert.Equal(t, []byte{1, 1}, encodeOK(t, nested, Some(Some(struct{}{}))))
}

func TestOption_NicheCostsNothing(t *testing.T) {
	c := OptionOf(NonZeroU64)
	assert.Equal(t, NonZeroU64.Layout().Size(), c.Layout().Size())
	assert.False(t, c.Layout().HasNiche())

	assert.Equal(t, make([]byte, 8), encodeOK(t, c, None[uint64]()))
	assert.Equal(t, []byte{7, 0, 0, 0, 0, 0, 0, 0}, encodeOK(t, c, Some[uint64](7)))
}

func TestOption_RoundTrip(t *testing.T) {
	c := OptionOf(OptionOf(U16))
	for _, v := range []Option[Option[uint16]]{
		None[Option[uint16]](),
		Some(None[uint16]()),
		Some(Some[uint16](0)),
		Some(Some[uint16](0xbeef)),
	} {
		p := encodeOK(t, c, v)
		got, err := DecodeBlob(c, p, 0)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestOption_RejectsBadDiscriminant(t *testing.T) {
	_, err := DecodeBlob(OptionOf(U8), []byte{2, 0}, 0)
	var discErr *blob.DiscriminantError
	require.ErrorAs(t, err, &discErr)
	assert.Equal(t, byte(2), discErr.Got)
}

func TestOption_AbsentRequiresZeroPadding(t *testing.T) {
	_, err := DecodeBlob(OptionOf(U8), []byte{0, 5}, 0)
	require.ErrorIs(t, err, blob.ErrPadding)
}

func TestOption_InnerFailureIsWrapped(t *testing.T) {
	_, err := DecodeBlob(OptionOf(Bool), []byte{1, 9}, 0)
	var valErr *blob.ValueError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, 0, valErr.Field)
	var discErr *blob.DiscriminantError
	require.ErrorAs(t, err, &discErr)
	assert.Equal(t, byte(9), discErr.Got)
}

// A niche outside byte 0 must be all zero together with every other byte for
// the absent state.
func TestOption_NichePadding(t *testing.T) {
	c := OptionOf[pair](pairCodec{})
	require.Equal(t, 9, c.Layout().Size())

	none := encodeOK(t, c, None[pair]())
	require.Equal(t, make([]byte, 9), none)
	got, err := DecodeBlob(c, none, 0)
	require.NoError(t, err)
	assert.False(t, got.IsSome())

	// Flag byte set while the niche is zero.
	bad := append([]byte{}, none...)
	bad[0] = 1
	_, err = DecodeBlob(c, bad, 0)
	require.ErrorIs(t, err, blob.ErrPadding)

	some := encodeOK(t, c, Some(pair{flag: true, id: 3}))
	assert.Equal(t, []byte{1, 3, 0, 0, 0, 0, 0, 0, 0}, some)
	got, err = DecodeBlob(c, some, 0)
	require.NoError(t, err)
	v, ok := got.Get()
	require.True(t, ok)
	assert.Equal(t, pair{flag: true, id: 3}, v)
}

// pair is a bool followed by a non-zero u64; its niche is bytes [1,9).
type pair struct {
	flag bool
	id   uint64
}

type pairCodec struct{}

func (pairCodec) Layout() blob.Layout { return Bool.Layout().Extend(NonZeroU64.Layout()) }

func (pairCodec) Validate(v *blob.Validator) error {
	if err := ValidateField(v, Bool); err != nil {
		return err
	}
	return ValidateField(v, NonZeroU64)
}

func (pairCodec) Decode(d *blob.Decoder) pair {
	return pair{flag: DecodeField(d, Bool), id: DecodeField(d, NonZeroU64)}
}

func (pairCodec) Encode(v *pair) State {
	flag, id := Bool.Encode(&v.flag), NonZeroU64.Encode(&v.id)
	return Leaf(func(w *blob.Writer) {
		EncodeField(w, 1, flag)
		EncodeField(w, 8, id)
	})
}
