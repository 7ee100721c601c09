// Package durable flushes appended file data to stable storage.
package durable

import (
	"context"
	"fmt"
	"os"
)

// FlushMode controls durability guarantees for commits.
type FlushMode int

const (
	// FlushAuto syncs file data once per commit, after the commit mark is
	// written. On macOS it uses F_FULLFSYNC.
	FlushAuto FlushMode = iota

	// FlushDataOnly skips syncing. The caller is responsible for calling
	// Sync later, for example after batching several commits.
	FlushDataOnly

	// FlushFull syncs the blobs before the commit mark is written and syncs
	// again afterwards, so a mark never reaches disk ahead of its data.
	FlushFull
)

func (m FlushMode) String() string {
	switch m {
	case FlushAuto:
		return "auto"
	case FlushDataOnly:
		return "data-only"
	case FlushFull:
		return "full"
	default:
		return fmt.Sprintf("FlushMode(%d)", int(m))
	}
}

// Barrier syncs f before a commit mark is written. It only does work in
// FlushFull mode.
func Barrier(ctx context.Context, f *os.File, mode FlushMode) error {
	if mode != FlushFull {
		return nil
	}
	return Sync(ctx, f, mode)
}

// Commit syncs f after a commit mark is written.
func Commit(ctx context.Context, f *os.File, mode FlushMode) error {
	if mode == FlushDataOnly {
		return nil
	}
	return Sync(ctx, f, mode)
}

// Sync flushes f's data to disk regardless of mode. FlushAuto and FlushFull
// request the strongest flush the platform offers.
func Sync(ctx context.Context, f *os.File, mode FlushMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fdatasync(f, mode != FlushDataOnly); err != nil {
		return fmt.Errorf("durable: sync %s: %w", f.Name(), err)
	}
	return nil
}
