//go:build unix

package mmfile

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Map maps the first size bytes of f read-only. The mapping stays valid
// after f is closed and until release is called.
func Map(f *os.File, size int64) (data []byte, release func() error, err error) {
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	if size < 0 || size > int64(^uint(0)>>1) {
		return nil, nil, fmt.Errorf("mmfile: cannot map %d bytes", size)
	}
	data, err = unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("mmfile: mmap: %w", err)
	}
	release = func() error {
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// already unmapped
			return nil
		}
		return err
	}
	return data, release, nil
}

// MapPath opens path and maps the whole file.
func MapPath(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	return Map(f, info.Size())
}
