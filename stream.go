package morsel

import (
	"fmt"
	"io"
)

const (
	defaultBufSize = 4096

	// minRefill is the floor for spare capacity before an upstream read, so
	// a tiny min hint does not degrade into byte-sized Read calls. Same
	// floor as bytes.MinRead.
	minRefill = 512
)

// StreamBuffer is a Buffer that fills its window from an io.Reader. It
// grows the window in place, compacts consumed bytes away before
// allocating, and makes exactly one upstream Read per Refill call.
type StreamBuffer struct {
	r   io.Reader
	buf []byte // buf[off:] is the window
	off int
	err error // deferred upstream error, reported once the window stops growing
}

// NewStreamBuffer returns a StreamBuffer with the default initial capacity.
func NewStreamBuffer(r io.Reader) *StreamBuffer {
	return NewStreamBufferSize(r, defaultBufSize)
}

// NewStreamBufferSize returns a StreamBuffer whose window starts with
// capacity for size bytes. The window still grows past size on demand;
// sizing only tunes the initial allocation.
func NewStreamBufferSize(r io.Reader, size int) *StreamBuffer {
	if r == nil {
		panic("morsel: NewStreamBuffer called with a nil io.Reader")
	}
	if size < minRefill {
		size = minRefill
	}
	return &StreamBuffer{r: r, buf: make([]byte, 0, size)}
}

func (s *StreamBuffer) Window() []byte { return s.buf[s.off:] }

func (s *StreamBuffer) Consume(n int) error {
	if n < 0 || n > len(s.buf)-s.off {
		return fmt.Errorf("%w: %d of %d buffered", ErrConsumeRange, n, len(s.buf)-s.off)
	}
	s.off += n
	if s.off == len(s.buf) {
		s.buf = s.buf[:0]
		s.off = 0
	}
	return nil
}

// Refill makes one Read against the upstream reader and appends whatever it
// returns to the window. An upstream error is held back while that Read
// still produced bytes and surfaces on the next call, so callers always get
// to decode what arrived before the failure.
func (s *StreamBuffer) Refill(min int) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if min < 1 {
		min = 1
	}
	s.grow(min)
	n, err := s.r.Read(s.buf[len(s.buf):cap(s.buf)])
	if n < 0 {
		panic("morsel: reader returned negative count from Read")
	}
	s.buf = s.buf[:len(s.buf)+n]
	if err != nil {
		s.err = err
		if n == 0 {
			return 0, err
		}
	}
	return n, nil
}

// grow ensures at least max(min, minRefill) spare capacity after the
// window, compacting before it allocates.
func (s *StreamBuffer) grow(min int) {
	if min < minRefill {
		min = minRefill
	}
	if cap(s.buf)-len(s.buf) >= min {
		return
	}
	if s.off > 0 {
		n := copy(s.buf, s.buf[s.off:])
		s.buf = s.buf[:n]
		s.off = 0
		if cap(s.buf)-n >= min {
			return
		}
	}
	next := 2 * cap(s.buf)
	if next < len(s.buf)+min {
		next = len(s.buf) + min
	}
	nb := make([]byte, len(s.buf), next)
	copy(nb, s.buf)
	s.buf = nb
}
