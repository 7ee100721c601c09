package marshal

import (
	"github.com/joshuapare/hoardkit/hoard/blob"
	"github.com/joshuapare/hoardkit/hoard/offset"
)

// State is the per-value encoding state returned by Codec.Encode.
type State interface {
	// Poll returns a child job that must be written before this value's
	// blob can be encoded, or nil when the value is ready. Poll is called
	// repeatedly; once a child job is done it must not be returned again.
	Poll() *Job

	// EncodeBlob writes the value's blob. It is only called after Poll
	// returned nil.
	EncodeBlob(w *blob.Writer)
}

// Leaf returns the State of a value that points at nothing.
func Leaf(encode func(w *blob.Writer)) State { return leaf(encode) }

type leaf func(w *blob.Writer)

func (leaf) Poll() *Job                  { return nil }
func (l leaf) EncodeBlob(w *blob.Writer) { l(w) }

// PollAll polls states in order and returns the first pending child.
func PollAll(states ...State) *Job {
	for _, s := range states {
		if job := s.Poll(); job != nil {
			return job
		}
	}
	return nil
}

// Job is one blob waiting to be written to a Sink.
type Job struct {
	state  State
	size   int
	done   bool
	offset offset.Offset
	onDone func(offset.Offset)
}

// NewJob returns a job that writes a blob of size bytes from state. onDone,
// if set, is called once with the offset the blob was written at.
func NewJob(state State, size int, onDone func(offset.Offset)) *Job {
	return &Job{state: state, size: size, onDone: onDone}
}

// Done returns the job's offset once it has been written.
func (j *Job) Done() (offset.Offset, bool) {
	return j.offset, j.done
}

// Size returns the blob size of the job.
func (j *Job) Size() int { return j.size }

func (j *Job) finish(off offset.Offset) {
	j.offset = off
	j.done = true
	if j.onDone != nil {
		j.onDone(off)
	}
}
