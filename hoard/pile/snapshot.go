package pile

import "fmt"

// Snapshot is a window into a Mapping. It holds one reference to the
// mapping until closed.
type Snapshot struct {
	mapping *Mapping
	start   int
	end     int
}

// NewSnapshot returns a snapshot of m from start to the end of the mapping.
// The snapshot takes its own reference to m.
func NewSnapshot(m *Mapping, start int) (*Snapshot, error) {
	if start < 0 || start > m.Len() {
		return nil, fmt.Errorf("pile: snapshot start %d outside mapping of %d bytes: %w",
			start, m.Len(), ErrOutOfBounds)
	}
	return &Snapshot{mapping: m.Retain(), start: start, end: m.Len()}, nil
}

// Len returns the number of bytes in the window.
func (s *Snapshot) Len() int { return s.end - s.start }

// Bytes returns the window's bytes.
func (s *Snapshot) Bytes() []byte {
	s.check()
	return s.mapping.Bytes()[s.start:s.end:s.end]
}

// Truncate shrinks the window to its first n bytes. It never grows it.
func (s *Snapshot) Truncate(n int) {
	if n < 0 {
		panic(fmt.Sprintf("pile: truncate to %d", n))
	}
	if n < s.Len() {
		s.end = s.start + n
	}
}

// Clone returns an independent snapshot of the same window.
func (s *Snapshot) Clone() *Snapshot {
	s.check()
	return &Snapshot{mapping: s.mapping.Retain(), start: s.start, end: s.end}
}

// Pile returns the address space of the window.
func (s *Snapshot) Pile() Pile { return Pile{data: s.Bytes()} }

// Close releases the snapshot's reference to the mapping.
func (s *Snapshot) Close() error {
	if s.mapping == nil {
		return ErrClosed
	}
	m := s.mapping
	s.mapping = nil
	return m.Release()
}

func (s *Snapshot) check() {
	if s.mapping == nil {
		panic(ErrClosed)
	}
}
