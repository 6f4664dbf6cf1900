package morsel

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Writer provides buffered, error-latching encoding onto an io.Writer, the
// encode-side counterpart of Cursor. The first error sticks and turns every
// later write into a no-op, so a burst of writes needs a single check at
// the end through Err or Result.
type Writer struct {
	w     *bufio.Writer
	count int64 // total bytes written
	err   error // first error encountered
}

var (
	_ io.Writer       = (*Writer)(nil)
	_ io.ByteWriter   = (*Writer)(nil)
	_ io.StringWriter = (*Writer)(nil)
)

// NewWriter returns a Writer with the default buffer size.
func NewWriter(w io.Writer) *Writer {
	return NewWriterSize(w, defaultBufSize)
}

// NewWriterSize returns a Writer buffering up to size bytes. When w is
// already a *bufio.Writer at least that large it is used as is, so wrapping
// never stacks a second buffer.
func NewWriterSize(w io.Writer, size int) *Writer {
	if w == nil {
		panic("morsel: NewWriter called with a nil io.Writer")
	}
	return &Writer{w: bufio.NewWriterSize(w, size)}
}

// setError records the first non-nil error.
func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// write is the internal funnel every encoder goes through.
func (w *Writer) write(p []byte) {
	n, err := w.w.Write(p)
	w.count += int64(n)
	w.setError(err)
}

// Write implements the io.Writer interface.
func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 || w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(p)
	w.count += int64(n)
	w.setError(err)
	return n, w.err
}

// WriteString implements the io.StringWriter interface.
func (w *Writer) WriteString(s string) (int, error) {
	if s == "" || w.err != nil {
		return 0, w.err
	}
	n, err := w.w.WriteString(s)
	w.count += int64(n)
	w.setError(err)
	return n, w.err
}

// WriteByte implements the io.ByteWriter interface.
func (w *Writer) WriteByte(v byte) error {
	if w.err != nil {
		return w.err
	}
	if err := w.w.WriteByte(v); err != nil {
		w.err = err
		return err
	}
	w.count++
	return nil
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(p []byte) {
	if len(p) == 0 || w.err != nil {
		return
	}
	w.write(p)
}

// writeUint encodes v in the given byte width through a stack buffer.
func (w *Writer) writeUint(v uint64, width int, order binary.ByteOrder) {
	if w.err != nil {
		return
	}
	var buf [8]byte
	switch width {
	case 1:
		buf[0] = byte(v)
	case 2:
		order.PutUint16(buf[:2], uint16(v))
	case 4:
		order.PutUint32(buf[:4], uint32(v))
	case 8:
		order.PutUint64(buf[:8], v)
	default:
		w.setError(ErrInvalidWidth)
		return
	}
	w.write(buf[:width])
}

// --- Fixed-width integer writes ---

func (w *Writer) WriteUint8(v uint8) { w.writeUint(uint64(v), 1, nil) }

func (w *Writer) WriteUint16(v uint16, order binary.ByteOrder) { w.writeUint(uint64(v), 2, order) }

func (w *Writer) WriteUint32(v uint32, order binary.ByteOrder) { w.writeUint(uint64(v), 4, order) }

func (w *Writer) WriteUint64(v uint64, order binary.ByteOrder) { w.writeUint(v, 8, order) }

func (w *Writer) WriteInt8(v int8) { w.writeUint(uint64(uint8(v)), 1, nil) }

func (w *Writer) WriteInt16(v int16, order binary.ByteOrder) {
	w.writeUint(uint64(uint16(v)), 2, order)
}

func (w *Writer) WriteInt32(v int32, order binary.ByteOrder) {
	w.writeUint(uint64(uint32(v)), 4, order)
}

func (w *Writer) WriteInt64(v int64, order binary.ByteOrder) { w.writeUint(uint64(v), 8, order) }

// --- Framed writes ---

// WriteDelimited writes val followed by the delim byte. A val that itself
// contains delim could not be read back unambiguously, so it is rejected
// with ErrDelimiterCollision before anything is written.
func (w *Writer) WriteDelimited(val []byte, delim byte) {
	if w.err != nil {
		return
	}
	if i := bytes.IndexByte(val, delim); i >= 0 {
		w.setError(fmt.Errorf("%w: 0x%02x at offset %d", ErrDelimiterCollision, delim, i))
		return
	}
	w.write(val)
	if w.err == nil {
		w.WriteByte(delim)
	}
}

// WritePrefixed writes len(val) as an unsigned width-byte integer followed
// by val. A val too long for the prefix width is rejected with
// ErrLengthOverflow before anything is written.
func (w *Writer) WritePrefixed(val []byte, width int, order binary.ByteOrder) {
	if w.err != nil {
		return
	}
	if width < 8 && width > 0 && uint64(len(val)) > uint64(1)<<(8*width)-1 {
		w.setError(fmt.Errorf("%w: %d bytes with a %d-byte prefix", ErrLengthOverflow, len(val), width))
		return
	}
	w.writeUint(uint64(len(val)), width, order)
	if w.err == nil {
		w.write(val)
	}
}

// --- Padding ---

var zeros [minRefill]byte

// WriteZeros writes n zero bytes, usually as padding.
func (w *Writer) WriteZeros(n int) {
	for w.err == nil && n > 0 {
		k := min(n, len(zeros))
		w.write(zeros[:k])
		n -= k
	}
}

// Align writes zero bytes until the written count is a multiple of n.
func (w *Writer) Align(n int) {
	if n > 1 {
		w.WriteZeros(int(Roundup(w.count, int64(n)) - w.count))
	}
}

// --- Completion ---

func (w *Writer) Count() int64 { return w.count }
func (w *Writer) Err() error   { return w.err }

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.setError(w.w.Flush())
	return w.err
}

// Result flushes the buffer and returns the final count and error state.
func (w *Writer) Result() (int64, error) {
	w.Flush()
	return w.count, w.err
}
