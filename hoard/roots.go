package hoard

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/zeebo/blake3"

	"github.com/joshuapare/hoardkit/hoard/blob"
	"github.com/joshuapare/hoardkit/hoard/marshal"
	"github.com/joshuapare/hoardkit/hoard/offset"
	"github.com/joshuapare/hoardkit/hoard/pile"
	"github.com/joshuapare/hoardkit/internal/buf"
)

// IterRoots walks the committed roots of a snapshot from either end. Slots
// [front, back) are still to be visited; the front starts at the first slot
// that can follow a root of the codec's size.
//
// The iterator and the roots it yields borrow the snapshot and must not be
// used after it is closed.
type IterRoots[T any] struct {
	body  []byte
	codec marshal.Codec[T]
	size  int
	front int
	back  int
	log   *slog.Logger
}

// Roots returns an iterator over the roots in snap.
func Roots[T any](snap *pile.Snapshot, c marshal.Codec[T]) *IterRoots[T] {
	body := snap.Bytes()
	size := c.Layout().Size()
	return &IterRoots[T]{
		body:  body,
		codec: c,
		size:  size,
		front: (size + MarkSize - 1) / MarkSize,
		back:  len(body) / MarkSize,
		log:   discardLogger(),
	}
}

// RootsOf is Roots with h's logger attached. snap should come from h.
func RootsOf[T any](h *Hoard, snap *pile.Snapshot, c marshal.Codec[T]) *IterRoots[T] {
	return Roots(snap, c).WithLogger(h.log)
}

// WithLogger sets the logger that receives skipped-mark events.
func (it *IterRoots[T]) WithLogger(l *slog.Logger) *IterRoots[T] {
	it.log = l
	return it
}

// Next returns the next root from the front.
func (it *IterRoots[T]) Next() (Root[T], bool) {
	for it.front < it.back {
		slot := it.front
		it.front++
		if r, ok := it.at(slot); ok {
			return r, true
		}
	}
	return Root[T]{}, false
}

// NextBack returns the next root from the back.
func (it *IterRoots[T]) NextBack() (Root[T], bool) {
	for it.front < it.back {
		it.back--
		if r, ok := it.at(it.back); ok {
			return r, true
		}
	}
	return Root[T]{}, false
}

// Clone returns an independent iterator at the same position.
func (it *IterRoots[T]) Clone() *IterRoots[T] {
	c := *it
	return &c
}

// All yields the remaining roots oldest first.
func (it *IterRoots[T]) All() iter.Seq[Root[T]] {
	return func(yield func(Root[T]) bool) {
		for {
			r, ok := it.Next()
			if !ok || !yield(r) {
				return
			}
		}
	}
}

// Backward yields the remaining roots newest first.
func (it *IterRoots[T]) Backward() iter.Seq[Root[T]] {
	return func(yield func(Root[T]) bool) {
		for {
			r, ok := it.NextBack()
			if !ok || !yield(r) {
				return
			}
		}
	}
}

func (it *IterRoots[T]) at(slot int) (Root[T], bool) {
	if !validMark(it.body, slot) {
		if w, ok := buf.Slice(it.body, slot*MarkSize, MarkSize); ok && !buf.AllZero(w) && it.isLast(slot) {
			it.log.Debug("hoard skipping invalid trailing mark", "slot", slot)
		}
		return Root[T]{}, false
	}
	markOff := slot * MarkSize
	return Root[T]{
		pile:  pile.New(it.body[:markOff:markOff]),
		start: markOff - buf.Align8(it.size),
		size:  it.size,
		codec: it.codec,
	}, true
}

func (it *IterRoots[T]) isLast(slot int) bool { return slot == len(it.body)/MarkSize-1 }

// Root is one committed root. Its pile holds exactly the body bytes written
// before its mark.
type Root[T any] struct {
	pile  pile.Pile
	start int
	size  int
	codec marshal.Codec[T]
}

// Offset returns the body offset of the root blob.
func (r Root[T]) Offset() offset.Offset { return offset.MustNew(uint64(r.start)) }

// MarkOffset returns the body offset of the root's commit mark.
func (r Root[T]) MarkOffset() uint64 { return uint64(r.pile.Len()) }

// Pile returns the body as it was when the root was committed. Pointers
// inside the root resolve against it.
func (r Root[T]) Pile() pile.Pile { return r.pile }

// Blob returns the root's raw, unvalidated bytes.
func (r Root[T]) Blob() []byte {
	b, _ := r.pile.Fetch(r.Offset(), r.size)
	return b
}

// Value validates the root blob and its trailing padding, then decodes it.
func (r Root[T]) Value() (T, error) {
	var zero T
	if !buf.AllZero(r.pile.Bytes()[r.start+r.size:]) {
		return zero, fmt.Errorf("hoard: root at %v: %w", r.Offset(), blob.ErrPadding)
	}
	v, err := marshal.DecodeBlob(r.codec, r.Blob(), 0)
	if err != nil {
		return zero, fmt.Errorf("hoard: root at %v: %w", r.Offset(), err)
	}
	return v, nil
}

// Digest returns the BLAKE3 hash of the root's blob bytes.
func (r Root[T]) Digest() [32]byte {
	return blake3.Sum256(r.Blob())
}
