package offset

import "fmt"

// Kind classifies a Ptr.
type Kind uint8

const (
	// KindOffset is a persisted body offset.
	KindOffset Kind = iota + 1
	// KindTransient is an in-process arena handle.
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindOffset:
		return "Offset"
	case KindTransient:
		return "Transient"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Handle indexes a slot in an arena. Zero is never a valid handle.
type Handle uint64

// MaxHandle is the largest handle that fits in a Ptr word.
const MaxHandle Handle = 1<<63 - 1

// Ptr holds either an Offset or a Transient handle in one word.
type Ptr struct {
	raw uint64
}

// FromOffset returns an Offset-kind Ptr.
func FromOffset(o Offset) Ptr {
	if o.IsZero() {
		panic("offset: Ptr from zero Offset")
	}
	return Ptr{raw: o.raw}
}

// FromHandle returns a Transient-kind Ptr.
func FromHandle(h Handle) Ptr {
	if h == 0 || h > MaxHandle {
		panic(fmt.Sprintf("offset: invalid handle %d", h))
	}
	return Ptr{raw: uint64(h) << 1}
}

// Kind reports which representation p carries.
func (p Ptr) Kind() Kind {
	if p.raw&1 == 1 {
		return KindOffset
	}
	return KindTransient
}

// Offset returns the persisted offset when p is Offset-kind.
func (p Ptr) Offset() (Offset, bool) {
	if p.raw&1 != 1 {
		return Offset{}, false
	}
	return Offset{raw: p.raw}, true
}

// Handle returns the arena handle when p is Transient-kind.
func (p Ptr) Handle() (Handle, bool) {
	if p.raw&1 != 0 || p.raw == 0 {
		return 0, false
	}
	return Handle(p.raw >> 1), true
}

// Word returns the raw tagged word.
func (p Ptr) Word() uint64 { return p.raw }

// IsZero reports whether p is the zero value.
func (p Ptr) IsZero() bool { return p.raw == 0 }

func (p Ptr) String() string {
	if off, ok := p.Offset(); ok {
		return fmt.Sprintf("Offset(%#x)", off.Get())
	}
	h, _ := p.Handle()
	return fmt.Sprintf("Transient(%d)", h)
}
