package morsel

import (
	"encoding/binary"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// sizeCache memoizes binary.Size per type, which otherwise walks the whole
// struct with reflection on every call. Negative entries record types that
// have no fixed size.
var sizeCache = xsync.NewMap[reflect.Type, int]()

func fixedSizeOf[T any](v *T) (int, error) {
	rt := reflect.TypeOf(v).Elem()
	if size, ok := sizeCache.Load(rt); ok {
		if size < 0 {
			return 0, ErrNotFixedSize
		}
		return size, nil
	}
	size := binary.Size(v)
	sizeCache.Store(rt, size)
	if size < 0 {
		return 0, ErrNotFixedSize
	}
	return size, nil
}

// FixedSize reports the encoded byte size of T, useful for preallocating.
//
// T must have a fixed binary encoding: fixed-width numeric fields, arrays
// of those, or structs of both. Slices, maps, strings and interfaces have
// no fixed size and fail with ErrNotFixedSize.
func FixedSize[T any]() (int, error) {
	var v T
	return fixedSizeOf(&v)
}

// ReadFixed decodes a fixed-size value, typically a header struct, straight
// from the cursor's window. The bytes are consumed only after the whole
// value decoded, and not at all on failure.
func ReadFixed[T any](c *Cursor, order binary.ByteOrder) (T, error) {
	var v T
	size, err := fixedSizeOf(&v)
	if err != nil {
		return v, err
	}
	raw, err := c.PeekBytes(size)
	if err != nil {
		return v, err
	}
	if _, err := binary.Decode(raw, order, &v); err != nil {
		return v, err
	}
	if err := c.consume(size); err != nil {
		return v, err
	}
	return v, nil
}

// WriteFixed encodes a fixed-size value onto the writer.
func WriteFixed[T any](w *Writer, v T, order binary.ByteOrder) {
	if w.err != nil {
		return
	}
	size, err := fixedSizeOf(&v)
	if err != nil {
		w.setError(err)
		return
	}
	if err := binary.Write(w.w, order, &v); err != nil {
		w.setError(err)
		return
	}
	w.count += int64(size)
}
