package morsel

import (
	"fmt"
	"io"
)

// Buffer is the byte source a Cursor decodes from. It exposes already
// buffered input as a contiguous window, lets the owner consume a prefix of
// it, and pulls more input on demand.
//
// Window returns the buffered, unconsumed bytes without copying. Repeated
// calls with no intervening Consume or Refill return the same content. The
// slice is owned by the Buffer and is invalidated by the next Consume or
// Refill.
//
// Consume discards the first n window bytes. n larger than the window is a
// range error and must leave the window untouched.
//
// Refill tries to buffer at least min more bytes and reports how many were
// appended. It returns (0, io.EOF) once the input is exhausted. A return of
// (0, nil) is a stall: no progress now, but more input may arrive later.
type Buffer interface {
	Window() []byte
	Consume(n int) error
	Refill(min int) (int, error)
}

// SliceBuffer is a Buffer over a byte slice that is already complete, so
// Refill always reports end of input.
type SliceBuffer struct {
	b   []byte
	off int
}

// NewSliceBuffer returns a SliceBuffer whose window starts as b. The slice
// is not copied; the caller must not mutate it while decoding.
func NewSliceBuffer(b []byte) *SliceBuffer {
	return &SliceBuffer{b: b}
}

func (s *SliceBuffer) Window() []byte { return s.b[s.off:] }

func (s *SliceBuffer) Consume(n int) error {
	if n < 0 || n > len(s.b)-s.off {
		return fmt.Errorf("%w: %d of %d buffered", ErrConsumeRange, n, len(s.b)-s.off)
	}
	s.off += n
	return nil
}

func (s *SliceBuffer) Refill(min int) (int, error) { return 0, io.EOF }

// Reset rewinds the buffer onto b, allowing the SliceBuffer to be reused.
func (s *SliceBuffer) Reset(b []byte) {
	s.b = b
	s.off = 0
}

// LimitedBuffer is a Buffer that exposes at most N bytes of an underlying
// Buffer and then reports end of input, the Buffer analogue of
// io.LimitedReader. It lets a section of a stream be decoded with a hard
// boundary while the underlying Buffer keeps the rest.
type LimitedBuffer struct {
	B Buffer
	N int64
}

// LimitBuffer returns a LimitedBuffer that reads from b and stops with
// io.EOF after n bytes.
func LimitBuffer(b Buffer, n int64) *LimitedBuffer {
	return &LimitedBuffer{B: b, N: n}
}

func (l *LimitedBuffer) Window() []byte {
	w := l.B.Window()
	if int64(len(w)) > l.N {
		w = w[:l.N]
	}
	return w
}

func (l *LimitedBuffer) Consume(n int) error {
	if int64(n) > l.N {
		return fmt.Errorf("%w: %d of %d remaining", ErrConsumeRange, n, l.N)
	}
	if err := l.B.Consume(n); err != nil {
		return err
	}
	l.N -= int64(n)
	return nil
}

func (l *LimitedBuffer) Refill(min int) (int, error) {
	buffered := int64(len(l.B.Window()))
	if buffered >= l.N {
		return 0, io.EOF
	}
	n, err := l.B.Refill(min)
	// Report only the growth that falls inside the limit, so callers never
	// see progress the window will not show them.
	grown := int64(n)
	if buffered+grown > l.N {
		grown = l.N - buffered
	}
	return int(grown), err
}
