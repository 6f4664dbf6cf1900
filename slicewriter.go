package morsel

import "io"

// SliceWriter is an io.Writer over a fixed, caller-supplied byte slice, the
// write-side counterpart of SliceBuffer. It never grows the slice: a write
// past the end stores what fits and returns io.ErrShortWrite, which makes it
// a natural sink for encoding into preallocated frames.
type SliceWriter struct {
	b []byte
	n int
}

var (
	_ io.Writer       = (*SliceWriter)(nil)
	_ io.ByteWriter   = (*SliceWriter)(nil)
	_ io.StringWriter = (*SliceWriter)(nil)
)

// NewSliceWriter returns a SliceWriter filling b from the front.
func NewSliceWriter(b []byte) *SliceWriter {
	return &SliceWriter{b: b}
}

// Write implements the io.Writer interface.
func (s *SliceWriter) Write(p []byte) (int, error) {
	n := copy(s.b[s.n:], p)
	s.n += n
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// WriteString implements the io.StringWriter interface.
func (s *SliceWriter) WriteString(str string) (int, error) {
	n := copy(s.b[s.n:], str)
	s.n += n
	if n < len(str) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// WriteByte implements the io.ByteWriter interface.
func (s *SliceWriter) WriteByte(c byte) error {
	if s.n >= len(s.b) {
		return io.ErrShortWrite
	}
	s.b[s.n] = c
	s.n++
	return nil
}

// Bytes returns the written prefix of the slice.
func (s *SliceWriter) Bytes() []byte { return s.b[:s.n] }

// Len returns the number of bytes written.
func (s *SliceWriter) Len() int { return s.n }

// Available returns the space left for writing.
func (s *SliceWriter) Available() int { return len(s.b) - s.n }

// Reset rewinds the writer so the slice can be filled again.
func (s *SliceWriter) Reset() { s.n = 0 }
