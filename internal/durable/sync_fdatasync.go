//go:build linux || freebsd

package durable

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync syncs file data without forcing a metadata update beyond what is
// needed to read it back. full is ignored.
func fdatasync(f *os.File, _ bool) error {
	return unix.Fdatasync(int(f.Fd()))
}
