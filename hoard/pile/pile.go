package pile

import (
	"fmt"

	"github.com/joshuapare/hoardkit/hoard/offset"
	"github.com/joshuapare/hoardkit/internal/buf"
)

// Pile resolves offsets against a byte range. It implements zone.Zone. The
// bytes it returns are untrusted.
type Pile struct {
	data []byte
}

// New returns a Pile over b.
func New(b []byte) Pile { return Pile{data: b} }

// Len returns the size of the address space.
func (p Pile) Len() int { return len(p.data) }

// Bytes returns the whole range.
func (p Pile) Bytes() []byte { return p.data }

// Fetch returns the n bytes starting at off without copying.
func (p Pile) Fetch(off offset.Offset, n int) ([]byte, error) {
	end, err := buf.CheckRange(len(p.data), off.Get(), n)
	if err != nil {
		return nil, fmt.Errorf("pile: fetch %d bytes at %v: %w: %w", n, off, ErrOutOfBounds, err)
	}
	return p.data[off.Get():end:end], nil
}
