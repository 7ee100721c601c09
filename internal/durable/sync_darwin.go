//go:build darwin

package durable

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync uses F_FULLFSYNC when full is set, which also flushes the drive
// cache. macOS has no fdatasync, so fsync is used otherwise.
func fdatasync(f *os.File, full bool) error {
	if full {
		_, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0)
		return err
	}
	return unix.Fsync(int(f.Fd()))
}
