package hoard

import (
	"io"
	"log/slog"

	"github.com/joshuapare/hoardkit/internal/durable"
)

// Options configures opening and writing a hoard.
type Options struct {
	// Flavor tags files created for one application. Opening a file whose
	// header carries a different flavor fails with ErrFlavor.
	// Default: 0
	Flavor uint32

	// FlushMode controls the durability guarantees for commits.
	// Default: durable.FlushAuto
	FlushMode durable.FlushMode

	// PreFault touches every page of a new mapping so that a file truncated
	// by another process fails at Snapshot instead of faulting on access.
	// Default: false
	PreFault bool

	// Logger receives debug events for open, commit and, through RootsOf,
	// root iteration.
	// Default: discards everything
	Logger *slog.Logger
}

// DefaultOptions returns the recommended options.
func DefaultOptions() *Options {
	return &Options{
		Flavor:    0,
		FlushMode: durable.FlushAuto,
		PreFault:  false,
		Logger:    discardLogger(),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (o *Options) withDefaults() *Options {
	if o == nil {
		return DefaultOptions()
	}
	out := *o
	if out.Logger == nil {
		out.Logger = discardLogger()
	}
	return &out
}
