package morsel

import "encoding/binary"

// AppendUint appends v to dst as an unsigned integer of the given byte
// width and returns the extended slice. Width must be 1, 2, 4 or 8; values
// that do not fit the width are truncated to its low bytes.
func AppendUint(dst []byte, v uint64, width int, order binary.AppendByteOrder) ([]byte, error) {
	switch width {
	case 1:
		return append(dst, byte(v)), nil
	case 2:
		return order.AppendUint16(dst, uint16(v)), nil
	case 4:
		return order.AppendUint32(dst, uint32(v)), nil
	case 8:
		return order.AppendUint64(dst, v), nil
	}
	return dst, ErrInvalidWidth
}

// AppendInt appends v to dst as a signed two's-complement integer of the
// given byte width. A value outside the width's range keeps its low bytes,
// which round-trips through DecodeInt for any in-range value.
func AppendInt(dst []byte, v int64, width int, order binary.AppendByteOrder) ([]byte, error) {
	return AppendUint(dst, uint64(v), width, order)
}
