//go:build !unix

package mmfile

import (
	"fmt"
	"io"
	"os"
)

// Map reads the first size bytes of f when mmap is not available.
func Map(f *os.File, size int64) ([]byte, func() error, error) {
	if size < 0 || size > int64(^uint(0)>>1) {
		return nil, nil, fmt.Errorf("mmfile: cannot map %d bytes", size)
	}
	data := make([]byte, size)
	if _, err := f.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}

// MapPath reads the whole file at path.
func MapPath(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
