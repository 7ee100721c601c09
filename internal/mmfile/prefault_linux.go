//go:build linux

package mmfile

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// madvPopulateRead pre-faults pages and reports EFAULT instead of raising
// SIGBUS. Linux 5.14+.
const madvPopulateRead = 22

// PreFault faults in every page of a mapping so that inaccessible regions,
// such as a file truncated under the mapping, surface as an error instead of
// SIGBUS on first access.
func PreFault(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	err := unix.Madvise(data, madvPopulateRead)
	if err == nil {
		return nil
	}
	if !errors.Is(err, unix.EINVAL) && !errors.Is(err, unix.ENOSYS) {
		return fmt.Errorf("mmfile: madvise populate: %w", err)
	}
	return touch(data)
}
