//go:build windows

package durable

import (
	"os"

	"golang.org/x/sys/windows"
)

// fdatasync flushes file buffers. full is ignored.
func fdatasync(f *os.File, _ bool) error {
	return windows.FlushFileBuffers(windows.Handle(f.Fd()))
}
