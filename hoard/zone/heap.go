package zone

import (
	"fmt"

	"github.com/joshuapare/hoardkit/hoard/offset"
)

// sentinel is the handle shared by every zero-size allocation. It never
// occupies a slot.
const sentinel offset.Handle = 1

// Heap is the arena holding Transient values. Handles index its slot table;
// freed slots are reused. A Heap is not safe for concurrent use.
type Heap struct {
	slots []any
	free  []offset.Handle
	live  int
}

// NewHeap returns an empty arena.
func NewHeap() *Heap {
	return &Heap{slots: make([]any, sentinel+1)}
}

// Live returns the number of occupied slots.
func (h *Heap) Live() int { return h.live }

func (h *Heap) put(p any) offset.Handle {
	if len(h.slots) <= int(sentinel) {
		h.slots = make([]any, sentinel+1)
	}
	h.live++
	if n := len(h.free); n > 0 {
		hd := h.free[n-1]
		h.free = h.free[:n-1]
		h.slots[hd] = p
		return hd
	}
	h.slots = append(h.slots, p)
	return offset.Handle(len(h.slots) - 1)
}

func (h *Heap) get(hd offset.Handle) any {
	if hd <= sentinel || int(hd) >= len(h.slots) || h.slots[hd] == nil {
		panic(fmt.Sprintf("zone: dangling handle %d", hd))
	}
	return h.slots[hd]
}

func (h *Heap) remove(hd offset.Handle) any {
	p := h.get(hd)
	h.slots[hd] = nil
	h.free = append(h.free, hd)
	h.live--
	return p
}
