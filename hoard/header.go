package hoard

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/joshuapare/hoardkit/internal/buf"
)

// HeaderSize is the size of the file header. Body offsets are relative to
// its end.
const HeaderSize = 32

// Version is the format version written by this package.
const Version uint32 = 1

// Magic identifies a hoard file.
var Magic = [8]byte{'h', 'o', 'a', 'r', 'd', 0, 0, 0}

const (
	versionOff = 8
	flavorOff  = 12
	fileIDOff  = 16
)

// Header is the fixed prefix of a hoard file.
type Header struct {
	Version uint32
	Flavor  uint32
	FileID  uuid.UUID
}

// NewHeader returns a header for a new file with a fresh random file id.
func NewHeader(flavor uint32) Header {
	return Header{Version: Version, Flavor: flavor, FileID: uuid.New()}
}

// Bytes encodes the header.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	copy(b, Magic[:])
	buf.PutU32LE(b[versionOff:], h.Version)
	buf.PutU32LE(b[flavorOff:], h.Flavor)
	copy(b[fileIDOff:], h.FileID[:])
	return b
}

// ParseHeader decodes and checks a header.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrTruncatedHeader, len(b))
	}
	if [8]byte(b[:8]) != Magic {
		return Header{}, fmt.Errorf("%w: % x", ErrBadMagic, b[:8])
	}
	h := Header{
		Version: buf.U32LE(b[versionOff:]),
		Flavor:  buf.U32LE(b[flavorOff:]),
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	id, err := uuid.FromBytes(b[fileIDOff:HeaderSize])
	if err != nil {
		return Header{}, fmt.Errorf("hoard: file id: %w", err)
	}
	h.FileID = id
	return h, nil
}

// ReadHeader reads and checks the header at the start of r.
func ReadHeader(r io.ReaderAt) (Header, error) {
	b := make([]byte, HeaderSize)
	n, err := r.ReadAt(b, 0)
	if n < HeaderSize {
		if err == nil || err == io.EOF {
			return Header{}, fmt.Errorf("%w: %d bytes", ErrTruncatedHeader, n)
		}
		return Header{}, fmt.Errorf("hoard: read header: %w", err)
	}
	return ParseHeader(b)
}
