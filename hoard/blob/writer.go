package blob

import "fmt"

// Writer fills a blob of a fixed size. Writing past the end, or finishing
// before the blob is full, is a codec bug and panics.
type Writer struct {
	buf []byte
	pos int
}

// NewWriter returns a writer for a blob of size bytes.
func NewWriter(size int) *Writer {
	return &Writer{buf: make([]byte, size)}
}

// Len returns the size of the blob being written.
func (w *Writer) Len() int { return len(w.buf) }

// Remaining returns the number of bytes left to write.
func (w *Writer) Remaining() int { return len(w.buf) - w.pos }

// WriteBytes copies p into the blob.
func (w *Writer) WriteBytes(p []byte) {
	copy(w.next(len(p)), p)
}

// WriteByte writes a single byte. It never fails; the error return only
// satisfies io.ByteWriter.
func (w *Writer) WriteByte(c byte) error {
	w.next(1)[0] = c
	return nil
}

// WritePadding writes n zero bytes.
func (w *Writer) WritePadding(n int) {
	clear(w.next(n))
}

// Field returns a writer over the next n bytes.
func (w *Writer) Field(n int) *Writer {
	return &Writer{buf: w.next(n)}
}

// Done panics unless every byte of the blob has been written.
func (w *Writer) Done() {
	if w.pos != len(w.buf) {
		panic(fmt.Sprintf("blob: wrote %d of %d bytes", w.pos, len(w.buf)))
	}
}

// Finish checks the blob is complete and returns its bytes.
func (w *Writer) Finish() []byte {
	w.Done()
	return w.buf
}

func (w *Writer) next(n int) []byte {
	return take(w.buf, &w.pos, n)
}
