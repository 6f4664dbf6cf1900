package morsel

import (
	"fmt"
	"io"
)

// ChainBuffer is a Buffer that drains a sequence of Buffers in order, the
// Buffer analogue of io.MultiReader. The usual case is a prefix that was
// buffered elsewhere (a sniffed header, a resumed session's leftover) placed
// in front of a live stream.
//
// The window a cursor decodes from must stay contiguous, so bytes left over
// at the end of one source are copied once into an owned spill buffer and
// later sources append to it until it drains. Values that start and end
// inside a single source never touch the spill.
type ChainBuffer struct {
	bufs  []Buffer // bufs[0] is the source currently being drained
	spill []byte   // carries a value across a source boundary
	soff  int      // consumed prefix of spill
}

// NewChainBuffer returns a ChainBuffer reading the given sources in order.
func NewChainBuffer(bufs ...Buffer) *ChainBuffer {
	for _, b := range bufs {
		if b == nil {
			panic("morsel: NewChainBuffer called with a nil Buffer")
		}
	}
	return &ChainBuffer{bufs: bufs}
}

func (c *ChainBuffer) spilled() bool { return c.soff < len(c.spill) }

func (c *ChainBuffer) Window() []byte {
	if c.spilled() {
		return c.spill[c.soff:]
	}
	if len(c.bufs) > 0 {
		return c.bufs[0].Window()
	}
	return nil
}

func (c *ChainBuffer) Consume(n int) error {
	if c.spilled() {
		left := len(c.spill) - c.soff
		if n < 0 || n > left {
			return fmt.Errorf("%w: %d of %d buffered", ErrConsumeRange, n, left)
		}
		c.soff += n
		if c.soff == len(c.spill) {
			c.spill = c.spill[:0]
			c.soff = 0
		}
		return nil
	}
	if len(c.bufs) > 0 {
		return c.bufs[0].Consume(n)
	}
	if n != 0 {
		return fmt.Errorf("%w: %d of 0 buffered", ErrConsumeRange, n)
	}
	return nil
}

// Refill reports growth as the window delta, so bytes that reach the window
// through a spill transfer count exactly once. Any end-of-input or stall
// seen while progress was still made is suppressed and resurfaces on the
// next call.
func (c *ChainBuffer) Refill(min int) (int, error) {
	if min < 1 {
		min = 1
	}
	before := len(c.Window())
	err := c.refill(min)
	if grown := len(c.Window()) - before; grown > 0 {
		return grown, nil
	}
	return 0, err
}

func (c *ChainBuffer) refill(min int) error {
	if c.spilled() {
		return c.refillSpill(min)
	}
	for len(c.bufs) > 0 {
		cur := c.bufs[0]
		n, err := cur.Refill(min)
		if n > 0 || err == nil {
			return err
		}
		if err != io.EOF {
			return err
		}
		// cur is exhausted. Bytes left in its window continue in the next
		// source; move them over the boundary and keep filling.
		if w := cur.Window(); len(w) > 0 {
			c.spill = append(c.spill[:0], w...)
			c.soff = 0
			if cerr := cur.Consume(len(w)); cerr != nil {
				return cerr
			}
			c.bufs = c.bufs[1:]
			return c.refillSpill(min)
		}
		c.bufs = c.bufs[1:]
	}
	return io.EOF
}

// refillSpill appends up to min bytes from the remaining sources onto the
// spill, consuming them from their source as it goes.
func (c *ChainBuffer) refillSpill(min int) error {
	added := 0
	for added < min {
		if len(c.bufs) == 0 {
			if added > 0 {
				return nil
			}
			return io.EOF
		}
		cur := c.bufs[0]
		w := cur.Window()
		if len(w) == 0 {
			n, err := cur.Refill(min - added)
			if n == 0 {
				if err == io.EOF {
					c.bufs = c.bufs[1:]
					continue
				}
				if added > 0 {
					return nil
				}
				return err
			}
			w = cur.Window()
		}
		c.spill = append(c.spill, w...)
		if err := cur.Consume(len(w)); err != nil {
			return err
		}
		added += len(w)
	}
	return nil
}
