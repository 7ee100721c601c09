package zone

import (
	"errors"
	"fmt"

	"github.com/joshuapare/hoardkit/hoard/offset"
)

// ErrMissing is returned by every fetch from the Missing zone.
var ErrMissing = errors.New("zone: missing")

// ErrNoZone indicates a persisted pointer was resolved without a zone.
var ErrNoZone = errors.New("zone: persisted pointer needs a zone")

// PersistedError is returned by TryTake when the value is not held in
// memory. The pointer has to be resolved through a Zone instead.
type PersistedError struct {
	Offset offset.Offset
	Meta   uint64
}

func (e *PersistedError) Error() string {
	return fmt.Sprintf("zone: value is persisted at %v", e.Offset)
}
