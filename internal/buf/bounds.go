package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// CheckRange validates that n bytes starting at offset fit in a buffer of
// bufLen bytes. Offsets come from untrusted file words, so they are taken
// as uint64 and checked against int before any arithmetic.
//
//	end, err := buf.CheckRange(len(data), off, size)
//	if err != nil {
//	    return fmt.Errorf("pile: %w", err)
//	}
func CheckRange(bufLen int, offset uint64, n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("negative size: %d", n)
	}
	if offset > uint64(math.MaxInt) {
		return 0, fmt.Errorf("overflow: offset=%d exceeds int", offset)
	}
	end, ok := AddOverflowSafe(int(offset), n)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + size=%d", offset, n)
	}
	if end > bufLen {
		return 0, fmt.Errorf("bounds: end=%d > len=%d", end, bufLen)
	}
	return end, nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}
