package offset

import "fmt"

// TagError reports a persisted pointer word whose low tag bit is not set.
type TagError struct {
	Raw uint64
}

func (e *TagError) Error() string {
	return fmt.Sprintf("offset: word 0x%016x is not tagged as an offset", e.Raw)
}

// RangeError reports an offset beyond Max.
type RangeError struct {
	Value uint64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("offset: %d exceeds maximum %d", e.Value, Max)
}
