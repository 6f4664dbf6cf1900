package morsel

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// DefaultStallLimit is how many consecutive no-progress refills a Cursor
// tolerates before an operation fails with ErrBudgetExceeded.
const DefaultStallLimit = 100

// Cursor drives the decode functions against a refillable Buffer. Each
// operation decodes from the buffered window, asks the Buffer for more
// input while the value is incomplete, and consumes the value's bytes only
// once it decoded whole. An operation that fails consumes nothing, and the
// failure does not stick: the next call starts fresh against the same
// window.
//
// A refill that appends nothing is a stall. Stalls reset whenever input
// arrives; too many in a row abort the operation with ErrBudgetExceeded so
// a source that stops producing cannot spin the cursor forever.
//
// End of input maps onto the io conventions: io.EOF when it falls between
// values, io.ErrUnexpectedEOF when it cuts one off.
type Cursor struct {
	buf        Buffer
	off        int64 // total bytes consumed through this cursor
	stallLimit int
}

var (
	_ io.Reader     = (*Cursor)(nil)
	_ io.ByteReader = (*Cursor)(nil)
)

// NewCursor returns a Cursor reading from b.
func NewCursor(b Buffer) *Cursor {
	if b == nil {
		panic("morsel: NewCursor called with a nil Buffer")
	}
	return &Cursor{buf: b, stallLimit: DefaultStallLimit}
}

// WithStallLimit overrides DefaultStallLimit and returns the configured
// cursor for chaining. Limits below one are ignored.
func (c *Cursor) WithStallLimit(n int) *Cursor {
	if n > 0 {
		c.stallLimit = n
	}
	return c
}

// Offset returns the total number of bytes consumed through the cursor.
func (c *Cursor) Offset() int64 { return c.off }

// consume commits n window bytes and advances the cursor offset.
func (c *Cursor) consume(n int) error {
	if err := c.buf.Consume(n); err != nil {
		return err
	}
	c.off += int64(n)
	return nil
}

// fill requests at least need more bytes, counting consecutive stalls.
// It returns nil when the window grew, io.EOF untranslated at end of
// input, and ErrBudgetExceeded when the stall allowance runs out.
func (c *Cursor) fill(need int, stalls *int) error {
	n, err := c.buf.Refill(need)
	if n > 0 {
		*stalls = 0
		return nil
	}
	if err != nil {
		return err
	}
	*stalls++
	if *stalls >= c.stallLimit {
		return ErrBudgetExceeded
	}
	return nil
}

// eofErr maps end of input for an operation that still needs bytes: clean
// io.EOF when nothing is pending, io.ErrUnexpectedEOF when part of a value
// is already buffered.
func (c *Cursor) eofErr() error {
	if len(c.buf.Window()) > 0 {
		return io.ErrUnexpectedEOF
	}
	return io.EOF
}

// peekUint decodes a width-byte unsigned integer from the window without
// consuming it, refilling until it is complete.
func (c *Cursor) peekUint(width int, order binary.ByteOrder) (uint64, error) {
	var stalls int
	for {
		v, _, err := DecodeUint(c.buf.Window(), width, order)
		if err == nil {
			return v, nil
		}
		short, ok := err.(*ShortInputError)
		if !ok {
			return 0, err
		}
		if err := c.fill(short.Need, &stalls); err != nil {
			if err == io.EOF {
				return 0, c.eofErr()
			}
			return 0, err
		}
	}
}

func (c *Cursor) readUint(width int, order binary.ByteOrder) (uint64, error) {
	v, err := c.peekUint(width, order)
	if err != nil {
		return 0, err
	}
	if err := c.consume(width); err != nil {
		return 0, err
	}
	return v, nil
}

// --- Fixed-width integer reads ---

func (c *Cursor) ReadUint8() (uint8, error) {
	v, err := c.readUint(1, nil)
	return uint8(v), err
}

func (c *Cursor) ReadUint16(order binary.ByteOrder) (uint16, error) {
	v, err := c.readUint(2, order)
	return uint16(v), err
}

func (c *Cursor) ReadUint32(order binary.ByteOrder) (uint32, error) {
	v, err := c.readUint(4, order)
	return uint32(v), err
}

func (c *Cursor) ReadUint64(order binary.ByteOrder) (uint64, error) {
	return c.readUint(8, order)
}

func (c *Cursor) ReadInt8() (int8, error) {
	v, err := c.readUint(1, nil)
	return int8(uint8(v)), err
}

func (c *Cursor) ReadInt16(order binary.ByteOrder) (int16, error) {
	v, err := c.readUint(2, order)
	return int16(uint16(v)), err
}

func (c *Cursor) ReadInt32(order binary.ByteOrder) (int32, error) {
	v, err := c.readUint(4, order)
	return int32(uint32(v)), err
}

func (c *Cursor) ReadInt64(order binary.ByteOrder) (int64, error) {
	v, err := c.readUint(8, order)
	return int64(v), err
}

// --- Delimited and counted reads ---

// ReadUntil reads up to and including the next delim byte and returns an
// owned copy of the bytes before it. The delimiter must appear within
// budget bytes of the current position or the read fails with
// ErrDelimiterNotFound. End of input before the delimiter is
// io.ErrUnexpectedEOF, or io.EOF when nothing at all was buffered.
func (c *Cursor) ReadUntil(delim byte, budget int) ([]byte, error) {
	var stalls int
	for {
		val, n, err := DecodeUntil(c.buf.Window(), delim, budget)
		if err == nil {
			out := bytes.Clone(val)
			if err := c.consume(n); err != nil {
				return nil, err
			}
			return out, nil
		}
		short, ok := err.(*ShortInputError)
		if !ok {
			return nil, err
		}
		if err := c.fill(short.Need, &stalls); err != nil {
			if err == io.EOF {
				return nil, c.eofErr()
			}
			return nil, err
		}
	}
}

// ReadExact reads exactly n bytes and returns an owned copy.
func (c *Cursor) ReadExact(n int) ([]byte, error) {
	var stalls int
	for {
		val, k, err := DecodeBytes(c.buf.Window(), n)
		if err == nil {
			out := bytes.Clone(val)
			if err := c.consume(k); err != nil {
				return nil, err
			}
			return out, nil
		}
		short, ok := err.(*ShortInputError)
		if !ok {
			return nil, err
		}
		if err := c.fill(short.Need, &stalls); err != nil {
			if err == io.EOF {
				return nil, c.eofErr()
			}
			return nil, err
		}
	}
}

// ReadWhile reads the run of bytes satisfying pred and returns an owned
// copy, leaving the byte that ended the run unconsumed. End of input ends
// the run cleanly; a run of budget or more bytes fails with
// ErrBudgetExceeded. On an exhausted source with no run to return, the
// error is io.EOF.
func (c *Cursor) ReadWhile(pred func(byte) bool, budget int) ([]byte, error) {
	var stalls int
	for {
		val, n, err := DecodeWhile(c.buf.Window(), pred, budget, false)
		if err == nil {
			out := bytes.Clone(val)
			if err := c.consume(n); err != nil {
				return nil, err
			}
			return out, nil
		}
		short, ok := err.(*ShortInputError)
		if !ok {
			return nil, err
		}
		if err := c.fill(short.Need, &stalls); err != nil {
			if err != io.EOF {
				return nil, err
			}
			val, n, err := DecodeWhile(c.buf.Window(), pred, budget, true)
			if err != nil {
				return nil, err
			}
			if n == 0 && len(c.buf.Window()) == 0 {
				return nil, io.EOF
			}
			out := bytes.Clone(val)
			if err := c.consume(n); err != nil {
				return nil, err
			}
			return out, nil
		}
	}
}

// ReadPrefixed reads a length-prefixed byte run: an unsigned width-byte
// length followed by that many bytes. The length is decoded against the
// window without being consumed, so a length above max rejects with
// ErrLengthLimit and the stream is left intact for inspection. Prefix and
// payload are consumed together once both are buffered.
func (c *Cursor) ReadPrefixed(order binary.ByteOrder, width, max int) ([]byte, error) {
	if max < 0 {
		return nil, ErrNegativeCount
	}
	var stalls int
	for {
		win := c.buf.Window()
		length, hn, err := DecodeUint(win, width, order)
		if err == nil {
			if length > uint64(max) {
				return nil, fmt.Errorf("%w: %d > %d", ErrLengthLimit, length, max)
			}
			var val []byte
			val, _, err = DecodeBytes(win[hn:], int(length))
			if err == nil {
				out := bytes.Clone(val)
				if err := c.consume(hn + int(length)); err != nil {
					return nil, err
				}
				return out, nil
			}
		}
		short, ok := err.(*ShortInputError)
		if !ok {
			return nil, err
		}
		if err := c.fill(short.Need, &stalls); err != nil {
			if err == io.EOF {
				return nil, c.eofErr()
			}
			return nil, err
		}
	}
}

// PeekBytes returns the next n bytes without consuming them. The slice
// aliases the buffered window and is only valid until the next operation
// on the cursor or its Buffer.
func (c *Cursor) PeekBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	var stalls int
	for {
		val, _, err := DecodeBytes(c.buf.Window(), n)
		if err == nil {
			return val, nil
		}
		short, ok := err.(*ShortInputError)
		if !ok {
			return nil, err
		}
		if err := c.fill(short.Need, &stalls); err != nil {
			if err == io.EOF {
				return nil, c.eofErr()
			}
			return nil, err
		}
	}
}

// --- Skipping ---

// Discard drops the next n bytes, consuming them window by window as they
// arrive, and reports how many were dropped. Like bufio.Reader.Discard it
// returns the read error that stopped it short, io.EOF included.
func (c *Cursor) Discard(n int) (int, error) {
	if n < 0 {
		return 0, ErrNegativeCount
	}
	var stalls, total int
	for total < n {
		win := c.buf.Window()
		if len(win) > 0 {
			k := min(len(win), n-total)
			if err := c.consume(k); err != nil {
				return total, err
			}
			total += k
			continue
		}
		if err := c.fill(n-total, &stalls); err != nil {
			return total, err
		}
	}
	return total, nil
}

// DiscardUntil drops bytes up to and including the next delim byte and
// reports how many were dropped. Unlike ReadUntil it holds nothing back,
// so the scan is unbounded and consumes as it goes. End of input after
// dropping anything is io.ErrUnexpectedEOF.
func (c *Cursor) DiscardUntil(delim byte) (int, error) {
	var stalls, total int
	for {
		win := c.buf.Window()
		if i := bytes.IndexByte(win, delim); i >= 0 {
			if err := c.consume(i + 1); err != nil {
				return total, err
			}
			return total + i + 1, nil
		}
		if len(win) > 0 {
			if err := c.consume(len(win)); err != nil {
				return total, err
			}
			total += len(win)
		}
		if err := c.fill(1, &stalls); err != nil {
			if err == io.EOF {
				if total > 0 {
					return total, io.ErrUnexpectedEOF
				}
				return 0, io.EOF
			}
			return total, err
		}
	}
}

// DiscardWhile drops the run of bytes satisfying pred and reports how many
// were dropped. End of input ends the run cleanly with a nil error.
func (c *Cursor) DiscardWhile(pred func(byte) bool) (int, error) {
	var stalls, total int
	for {
		win := c.buf.Window()
		i := 0
		for i < len(win) && pred(win[i]) {
			i++
		}
		if i > 0 {
			if err := c.consume(i); err != nil {
				return total, err
			}
			total += i
		}
		if i < len(win) {
			return total, nil
		}
		if err := c.fill(1, &stalls); err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}
	}
}

// Align discards bytes until the cursor offset is a multiple of n.
func (c *Cursor) Align(n int) error {
	if n <= 1 {
		return nil
	}
	pad := Roundup(c.off, int64(n)) - c.off
	if pad == 0 {
		return nil
	}
	_, err := c.Discard(int(pad))
	return err
}

// --- io interop ---

// Read implements io.Reader, draining buffered bytes first and refilling
// only when the window is empty.
func (c *Cursor) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	var stalls int
	for {
		win := c.buf.Window()
		if len(win) > 0 {
			n := copy(p, win)
			if err := c.consume(n); err != nil {
				return 0, err
			}
			return n, nil
		}
		if err := c.fill(1, &stalls); err != nil {
			return 0, err
		}
	}
}

// ReadByte implements io.ByteReader.
func (c *Cursor) ReadByte() (byte, error) {
	return c.ReadUint8()
}
