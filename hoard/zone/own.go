package zone

import (
	"unsafe"

	"github.com/joshuapare/hoardkit/hoard/marshal"
	"github.com/joshuapare/hoardkit/hoard/offset"
)

// FatPtr is a pointer word plus the metadata of an unsized pointee. Meta is
// zero for sized types.
type FatPtr[T any] struct {
	Raw  offset.Ptr
	Meta uint64
}

// Finalizer is implemented by values that hold resources beyond memory.
// Finalize runs when a Transient Own holding the value is released.
type Finalizer interface {
	Finalize()
}

// Own is the exclusive owner of one value, either held in a Heap or
// persisted at an Offset. An Own must be released exactly once, by Release,
// TryTake or Take; using it afterwards panics.
type Own[T any] struct {
	fat      FatPtr[T]
	heap     *Heap
	job      *marshal.Job // pending save, set by the codec
	released bool
}

// Alloc moves v into h and returns a Transient Own of it. Zero-size values
// share one sentinel handle and take no slot.
func Alloc[T any](h *Heap, c marshal.Codec[T], v T) *Own[T] {
	meta := marshal.MetadataOf(c, &v)
	if _, err := marshal.LayoutOf(c, meta); err != nil {
		panic(err)
	}
	hd := sentinel
	if unsafe.Sizeof(v) != 0 {
		p := new(T)
		*p = v
		hd = h.put(p)
	}
	return &Own[T]{
		fat:  FatPtr[T]{Raw: offset.FromHandle(hd), Meta: meta},
		heap: h,
	}
}

// Persisted returns an Own of the value stored at off.
func Persisted[T any](off offset.Offset, meta uint64) *Own[T] {
	return &Own[T]{fat: FatPtr[T]{Raw: offset.FromOffset(off), Meta: meta}}
}

// Kind reports whether the value is in memory or persisted.
func (o *Own[T]) Kind() offset.Kind {
	o.check()
	return o.fat.Raw.Kind()
}

// Ptr returns the underlying fat pointer.
func (o *Own[T]) Ptr() FatPtr[T] {
	o.check()
	return o.fat
}

// Released reports whether the Own has been consumed.
func (o *Own[T]) Released() bool { return o.released }

// TryTake consumes a Transient Own and returns its value. For a persisted
// Own it returns a *PersistedError and leaves the Own usable.
func (o *Own[T]) TryTake() (T, error) {
	o.check()
	if off, ok := o.fat.Raw.Offset(); ok {
		var zero T
		return zero, &PersistedError{Offset: off, Meta: o.fat.Meta}
	}
	v := o.transient()
	o.free()
	o.released = true
	return v, nil
}

// Release consumes the Own. A Transient value is finalized and its slot
// freed; releasing a persisted Own only invalidates it.
func (o *Own[T]) Release() {
	o.check()
	o.released = true
	if o.fat.Raw.Kind() == offset.KindOffset {
		return
	}
	p := o.ref()
	o.free()
	if f, ok := any(p).(Finalizer); ok {
		f.Finalize()
	} else if f, ok := any(*p).(Finalizer); ok {
		f.Finalize()
	}
}

func (o *Own[T]) check() {
	if o.released {
		panic("zone: use of released Own")
	}
}

// ref returns the heap copy of a Transient value.
func (o *Own[T]) ref() *T {
	hd, _ := o.fat.Raw.Handle()
	if hd == sentinel {
		return new(T)
	}
	return o.heap.get(hd).(*T)
}

func (o *Own[T]) transient() T { return *o.ref() }

func (o *Own[T]) free() {
	if hd, _ := o.fat.Raw.Handle(); hd != sentinel {
		o.heap.remove(hd)
	}
}

// persist records that the value now lives at off.
func (o *Own[T]) persist(off offset.Offset) {
	if o.fat.Raw.Kind() == offset.KindOffset {
		return
	}
	o.free()
	o.fat.Raw = offset.FromOffset(off)
	o.heap = nil
	o.job = nil
}
