package morsel

import (
	"encoding/binary"
	"io"
)

// ReadSeq decodes count consecutive fixed-size values of type T, back to
// back. Unlike the single-value reads it is progressive: items decoded
// before a failure are returned alongside the error. End of input at an item
// boundary mid-sequence is io.ErrUnexpectedEOF since the count promised
// more; io.EOF is only possible before the first item.
func ReadSeq[T any](c *Cursor, order binary.ByteOrder, count int) ([]T, error) {
	if count < 0 {
		return nil, ErrNegativeCount
	}
	out := make([]T, 0, count)
	for i := 0; i < count; i++ {
		v, err := ReadFixed[T](c, order)
		if err != nil {
			if i > 0 && err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// WriteSeq encodes a slice of fixed-size values back to back, the inverse of
// ReadSeq.
func WriteSeq[T any](w *Writer, items []T, order binary.ByteOrder) {
	for i := range items {
		WriteFixed(w, items[i], order)
		if w.err != nil {
			return
		}
	}
}
