package marshal

import (
	"fmt"

	"github.com/joshuapare/hoardkit/hoard/blob"
	"github.com/joshuapare/hoardkit/hoard/offset"
	"github.com/joshuapare/hoardkit/internal/buf"
)

// Sink is an append-only destination for blobs.
type Sink interface {
	// WriteBlob appends p and returns the offset it starts at.
	WriteBlob(p []byte) (offset.Offset, error)
}

// SaveStats describes a completed save.
type SaveStats struct {
	Blobs int // blobs written, including the root
	Bytes int // blob bytes written, excluding padding
}

// Save writes every unsaved value reachable from v, children before
// parents, then v itself. It returns the offset of v's blob.
func Save[T any](s Sink, c Codec[T], v *T) (offset.Offset, error) {
	off, _, err := SaveWithStats(s, c, v)
	return off, err
}

// SaveWithStats is Save that also reports what was written.
func SaveWithStats[T any](s Sink, c Codec[T], v *T) (offset.Offset, SaveStats, error) {
	l, err := LayoutOf(c, MetadataOf(c, v))
	if err != nil {
		return offset.Offset{}, SaveStats{}, err
	}
	root := NewJob(c.Encode(v), l.Size(), nil)
	stats, err := Drive(s, root)
	if err != nil {
		return offset.Offset{}, stats, err
	}
	off, _ := root.Done()
	return off, stats, nil
}

// Drive runs root and its pending children to completion.
//
// The walk keeps an explicit stack. The top job is polled; a pending child
// is pushed, otherwise the top job's blob is encoded, written, and popped.
// A job is only written once Poll reports no pending child, so every offset
// it encodes refers to an earlier write.
//
// If the sink fails the walk stops. Jobs written so far stay done, so a
// later Drive over the same states resumes without rewriting them.
func Drive(s Sink, root *Job) (SaveStats, error) {
	var stats SaveStats
	if root.done {
		return stats, nil
	}
	stack := []*Job{root}
	onStack := map[*Job]bool{root: true}

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if child := top.state.Poll(); child != nil {
			if child.done {
				panic("marshal: Poll returned a job that is already written")
			}
			if onStack[child] {
				panic("marshal: pointer cycle in saved graph")
			}
			stack = append(stack, child)
			onStack[child] = true
			continue
		}

		w := blob.NewWriter(top.size)
		top.state.EncodeBlob(w)
		p := w.Finish()

		off, err := s.WriteBlob(p)
		if err != nil {
			return stats, fmt.Errorf("marshal: write blob: %w", err)
		}
		top.finish(off)
		stats.Blobs++
		stats.Bytes += len(p)

		stack = stack[:len(stack)-1]
		delete(onStack, top)
	}
	return stats, nil
}

// Buffer is an in-memory Sink following the same placement rules as a
// hoard body: non-empty blobs start on a word boundary and are zero padded
// to the next one; an empty blob reports the current end without advancing.
type Buffer struct {
	buf []byte
}

// WriteBlob appends p.
func (b *Buffer) WriteBlob(p []byte) (offset.Offset, error) {
	off, ok := offset.New(uint64(len(b.buf)))
	if !ok {
		return offset.Offset{}, &offset.RangeError{Value: uint64(len(b.buf))}
	}
	if len(p) == 0 {
		return off, nil
	}
	b.buf = append(b.buf, p...)
	b.buf = append(b.buf, make([]byte, buf.Align8(len(p))-len(p))...)
	return off, nil
}

// Bytes returns everything written so far.
func (b *Buffer) Bytes() []byte { return b.buf }

// Len returns the number of bytes written, including padding.
func (b *Buffer) Len() int { return len(b.buf) }
