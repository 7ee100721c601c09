package hoard

import (
	"bytes"
	"context"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"

	"github.com/joshuapare/hoardkit/hoard/blob"
	"github.com/joshuapare/hoardkit/hoard/marshal"
	"github.com/joshuapare/hoardkit/hoard/offset"
	"github.com/joshuapare/hoardkit/hoard/zone"
	"github.com/joshuapare/hoardkit/internal/durable"
)

func createHoard(t *testing.T) (*HoardMut, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.hoard")
	h, err := Create(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h, path
}

func writeBlobs(t *testing.T, tx *Tx, blobs ...[]byte) []uint64 {
	t.Helper()
	var offs []uint64
	for _, p := range blobs {
		off, err := tx.WriteBlob(p)
		require.NoError(t, err)
		offs = append(offs, off.Get())
	}
	return offs
}

func TestTx_AppendOnlyLayout(t *testing.T) {
	h, _ := createHoard(t)

	snap, err := h.Snapshot()
	require.NoError(t, err)
	assert.Zero(t, snap.Len())
	require.NoError(t, snap.Close())

	tx, err := h.Begin()
	require.NoError(t, err)
	offs := writeBlobs(t, tx, []byte{}, []byte{}, []byte{1}, []byte{2}, []byte{}, []byte{})
	assert.Equal(t, []uint64{0, 0, 0, 8, 16, 16}, offs)

	mark, err := tx.Commit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(16), mark)

	snap, err = h.Snapshot()
	require.NoError(t, err)
	defer snap.Close()
	assert.Equal(t, []byte{
		1, 0, 0, 0, 0, 0, 0, 0,
		2, 0, 0, 0, 0, 0, 0, 0,
		0xfd, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	}, snap.Bytes())
	assert.Equal(t, []uint64{16}, MarkOffsets(snap.Bytes()))
}

func TestHoard_EndToEndReopen(t *testing.T) {
	h, path := createHoard(t)
	id := h.FileID()

	tx, err := h.Begin()
	require.NoError(t, err)
	writeBlobs(t, tx, []byte{}, []byte{1}, []byte{2}, []byte{})
	_, err = tx.Commit(context.Background())
	require.NoError(t, err)
	require.NoError(t, h.Close())

	r, err := Open(path, nil)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, id, r.FileID())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, raw, HeaderSize+24)

	snap, err := r.Snapshot()
	require.NoError(t, err)
	defer snap.Close()
	assert.Equal(t, raw[HeaderSize:], snap.Bytes())

	var marks []uint64
	for root := range Roots(snap, marshal.Unit).All() {
		marks = append(marks, root.MarkOffset())
		assert.Equal(t, uint64(16), root.Offset().Get())
	}
	assert.Equal(t, []uint64{16}, marks)
}

func pushU64s(t *testing.T, h *HoardMut, vals ...uint64) {
	t.Helper()
	for _, v := range vals {
		_, err := PushRoot(context.Background(), h, marshal.U64, &v)
		require.NoError(t, err)
	}
}

func collect[T any](seq iter.Seq[Root[T]]) []T {
	var out []T
	for r := range seq {
		v, err := r.Value()
		if err != nil {
			panic(err)
		}
		out = append(out, v)
	}
	return out
}

func TestRoots_ForwardBackwardSymmetry(t *testing.T) {
	h, _ := createHoard(t)
	pushU64s(t, h, 10, 20, 30, 40)

	snap, err := h.Snapshot()
	require.NoError(t, err)
	defer snap.Close()

	fwd := collect(Roots(snap, marshal.U64).All())
	back := collect(Roots(snap, marshal.U64).Backward())
	slices.Reverse(back)
	assert.Equal(t, []uint64{10, 20, 30, 40}, fwd)
	assert.Equal(t, fwd, back)
}

func TestRoots_MixedEnds(t *testing.T) {
	h, _ := createHoard(t)
	pushU64s(t, h, 1, 2, 3)

	snap, err := h.Snapshot()
	require.NoError(t, err)
	defer snap.Close()

	it := Roots(snap, marshal.U64)
	first, ok := it.Next()
	require.True(t, ok)
	clone := it.Clone()
	last, ok := it.NextBack()
	require.True(t, ok)
	mid, ok := it.Next()
	require.True(t, ok)
	_, ok = it.Next()
	assert.False(t, ok)
	_, ok = it.NextBack()
	assert.False(t, ok)

	v, _ := first.Value()
	assert.Equal(t, uint64(1), v)
	v, _ = mid.Value()
	assert.Equal(t, uint64(2), v)
	v, _ = last.Value()
	assert.Equal(t, uint64(3), v)

	assert.Equal(t, []uint64{2, 3}, collect(clone.All()))
}

func TestRoots_SkipsTornTrailingMark(t *testing.T) {
	h, path := createHoard(t)
	pushU64s(t, h, 5)

	// An interrupted writer: a blob and half a mark, no commit.
	tx, err := h.Begin()
	require.NoError(t, err)
	writeBlobs(t, tx, []byte{6, 0, 0, 0, 0, 0, 0, 0})
	tx.Rollback()
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	require.NoError(t, err)
	_, err = f.Write([]byte{0xfb, 0xff, 0xff, 0xff})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	r, err := Open(path, nil)
	require.NoError(t, err)
	defer r.Close()
	snap, err := r.Snapshot()
	require.NoError(t, err)
	defer snap.Close()

	assert.Equal(t, []uint64{5}, collect(Roots(snap, marshal.U64).Backward()))
}

func TestRootsOf_LogsSkippedTrailingMark(t *testing.T) {
	h, path := createHoard(t)
	pushU64s(t, h, 5)
	tx, err := h.Begin()
	require.NoError(t, err)
	writeBlobs(t, tx, []byte{6, 0, 0, 0, 0, 0, 0, 0})
	tx.Rollback()

	var logs bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r, err := Open(path, opts)
	require.NoError(t, err)
	defer r.Close()
	snap, err := r.Snapshot()
	require.NoError(t, err)
	defer snap.Close()

	assert.Equal(t, []uint64{5}, collect(RootsOf(r, snap, marshal.U64).Backward()))
	assert.Contains(t, logs.String(), "hoard skipping invalid trailing mark")
	assert.Contains(t, logs.String(), "slot=2")
}

func TestRoots_CorruptMarkWordIsSkipped(t *testing.T) {
	h, path := createHoard(t)
	pushU64s(t, h, 1, 2)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	// Second root's mark is at body offset 24.
	raw[HeaderSize+24] ^= 0xff
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	r, err := Open(path, nil)
	require.NoError(t, err)
	defer r.Close()
	snap, err := r.Snapshot()
	require.NoError(t, err)
	defer snap.Close()
	assert.Equal(t, []uint64{1}, collect(Roots(snap, marshal.U64).All()))
}

func TestRoot_ValueRejectsBadPadding(t *testing.T) {
	h, path := createHoard(t)
	v := uint8(9)
	_, err := PushRoot(context.Background(), h, marshal.U8, &v)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[HeaderSize+3] = 1
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	r, err := Open(path, nil)
	require.NoError(t, err)
	defer r.Close()
	snap, err := r.Snapshot()
	require.NoError(t, err)
	defer snap.Close()

	root, ok := Roots(snap, marshal.U8).Next()
	require.True(t, ok)
	_, err = root.Value()
	require.ErrorIs(t, err, blob.ErrPadding)
}

func TestPushRoot_PointerGraph(t *testing.T) {
	h, _ := createHoard(t)
	heap := zone.NewHeap()
	c := zone.OwnOf[[]byte](marshal.Bytes)
	own := zone.Alloc[[]byte](heap, marshal.Bytes, []byte("hello hoard"))

	off, err := PushRoot(context.Background(), h, c, &own)
	require.NoError(t, err)
	assert.Equal(t, uint64(16), off.Get())
	assert.Equal(t, offset.KindOffset, own.Kind())
	assert.Zero(t, heap.Live())

	snap, err := h.Snapshot()
	require.NoError(t, err)
	defer snap.Close()

	root, ok := Roots(snap, c).NextBack()
	require.True(t, ok)
	assert.Equal(t, off, root.Offset())
	assert.Equal(t, blake3.Sum256(root.Blob()), root.Digest())

	ptr, err := root.Value()
	require.NoError(t, err)
	got, err := zone.Get(root.Pile(), marshal.Bytes, ptr)
	require.NoError(t, err)
	assert.Equal(t, "hello hoard", string(got))
}

func TestPushRoot_UnsizedRejected(t *testing.T) {
	h, _ := createHoard(t)
	v := []byte{1}
	_, err := PushRoot[[]byte](context.Background(), h, marshal.Bytes, &v)
	require.ErrorIs(t, err, ErrUnsizedRoot)
}

func TestOpenMut_AppendsAfterExisting(t *testing.T) {
	h, path := createHoard(t)
	pushU64s(t, h, 1)
	require.NoError(t, h.Close())

	opts := DefaultOptions()
	opts.FlushMode = durable.FlushFull
	h2, err := OpenMut(path, opts)
	require.NoError(t, err)
	defer h2.Close()
	pushU64s(t, h2, 2)

	snap, err := h2.Snapshot()
	require.NoError(t, err)
	defer snap.Close()
	assert.Equal(t, []uint64{1, 2}, collect(Roots(snap, marshal.U64).All()))
	assert.Equal(t, []uint64{8, 24}, MarkOffsets(snap.Bytes()))
}

func TestSnapshot_OldSnapshotKeepsItsView(t *testing.T) {
	h, _ := createHoard(t)
	pushU64s(t, h, 1)
	old, err := h.Snapshot()
	require.NoError(t, err)
	defer old.Close()

	pushU64s(t, h, 2)
	cur, err := h.Snapshot()
	require.NoError(t, err)
	defer cur.Close()

	assert.Equal(t, 16, old.Len())
	assert.Equal(t, 32, cur.Len())
	assert.Equal(t, []uint64{1}, collect(Roots(old, marshal.U64).All()))
}

func TestBegin_OneTxAtATime(t *testing.T) {
	h, _ := createHoard(t)
	tx, err := h.Begin()
	require.NoError(t, err)
	_, err = h.Begin()
	require.ErrorIs(t, err, ErrTxActive)

	tx.Rollback()
	_, err = tx.WriteBlob([]byte{1})
	require.ErrorIs(t, err, ErrTxDone)
	_, err = tx.Commit(context.Background())
	require.ErrorIs(t, err, ErrTxDone)

	_, err = h.Begin()
	require.NoError(t, err)
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short")
	require.NoError(t, os.WriteFile(short, []byte("hoard"), 0o644))
	_, err := Open(short, nil)
	require.ErrorIs(t, err, ErrTruncatedHeader)

	_, path := createHoard(t)
	_, err = Open(path, &Options{Flavor: 3})
	require.ErrorIs(t, err, ErrFlavor)

	_, err = Create(path, nil)
	require.ErrorIs(t, err, os.ErrExist)
}

func TestTx_CommitRootChecksLastBlob(t *testing.T) {
	h, _ := createHoard(t)
	tx, err := h.Begin()
	require.NoError(t, err)

	_, err = tx.CommitRoot(context.Background(), 8)
	require.ErrorIs(t, err, ErrRootPlacement, "nothing written yet")

	writeBlobs(t, tx, []byte{1, 2, 3, 4, 5, 6, 7, 8}, []byte{9, 9, 9})
	_, err = tx.CommitRoot(context.Background(), 8)
	require.ErrorIs(t, err, ErrRootPlacement)

	// The transaction is still open after a rejected commit.
	writeBlobs(t, tx, []byte{4, 0, 0, 0, 0, 0, 0, 0})
	mark, err := tx.CommitRoot(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(24), mark)

	snap, err := h.Snapshot()
	require.NoError(t, err)
	defer snap.Close()
	assert.Equal(t, []uint64{4}, collect(Roots(snap, marshal.U64).All()))
}

func TestTx_CommitRootZeroSize(t *testing.T) {
	h, _ := createHoard(t)
	tx, err := h.Begin()
	require.NoError(t, err)
	writeBlobs(t, tx, []byte{1})
	mark, err := tx.CommitRoot(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), mark)
}
