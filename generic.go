package morsel

import (
	"encoding/binary"
	"reflect"

	"golang.org/x/exp/constraints"
)

// widthOf reports the in-memory byte width of the integer type T.
func widthOf[T constraints.Integer]() int {
	var zero T
	return int(reflect.TypeOf(zero).Size())
}

// Read decodes a value of any integer type from the cursor, sized by the
// type itself. Platform-width types (int, uint, uintptr) use their
// in-memory width, so fixed-width types are the portable choice for wire
// formats.
func Read[T constraints.Integer](c *Cursor, order binary.ByteOrder) (T, error) {
	v, err := c.readUint(widthOf[T](), order)
	return T(v), err
}

// Peek decodes like Read but leaves the bytes unconsumed.
func Peek[T constraints.Integer](c *Cursor, order binary.ByteOrder) (T, error) {
	v, err := c.peekUint(widthOf[T](), order)
	return T(v), err
}

// Append encodes v onto dst, sized by the type itself.
func Append[T constraints.Integer](dst []byte, v T, order binary.AppendByteOrder) ([]byte, error) {
	return AppendUint(dst, uint64(v), widthOf[T](), order)
}

// Write encodes v onto w, sized by the type itself.
func Write[T constraints.Integer](w *Writer, v T, order binary.ByteOrder) {
	w.writeUint(uint64(v), widthOf[T](), order)
}
