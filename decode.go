package morsel

import (
	"bytes"
	"encoding/binary"
)

// The decode functions below share one contract. They inspect view without
// retaining or mutating it and report one of three outcomes:
//
//   - a decoded value and the exact number of bytes it occupied
//   - *ShortInputError when view holds a prefix of a value that more input
//     could complete
//   - any other error when no amount of further input can help
//
// The consumed count is zero whenever the error is non-nil, so callers can
// retry or abort without rewinding anything.

// DecodeUint decodes an unsigned integer of the given byte width from the
// front of view. Width must be 1, 2, 4 or 8.
func DecodeUint(view []byte, width int, order binary.ByteOrder) (uint64, int, error) {
	switch width {
	case 1, 2, 4, 8:
	default:
		return 0, 0, ErrInvalidWidth
	}
	if len(view) < width {
		return 0, 0, shortErr(width - len(view))
	}
	var v uint64
	switch width {
	case 1:
		v = uint64(view[0])
	case 2:
		v = uint64(order.Uint16(view))
	case 4:
		v = uint64(order.Uint32(view))
	case 8:
		v = order.Uint64(view)
	}
	return v, width, nil
}

// DecodeInt decodes a signed two's-complement integer of the given byte
// width from the front of view, sign-extending it to 64 bits.
func DecodeInt(view []byte, width int, order binary.ByteOrder) (int64, int, error) {
	v, n, err := DecodeUint(view, width, order)
	if err != nil {
		return 0, 0, err
	}
	shift := uint(64 - 8*width)
	return int64(v<<shift) >> shift, n, nil
}

// DecodeUntil scans the front of view for delim and returns the bytes
// before it. The consumed count includes the delimiter; the returned slice
// does not. The delimiter must appear within the first budget bytes, so the
// longest decodable value is budget-1 bytes.
//
// The returned slice aliases view and is only valid until the view changes.
func DecodeUntil(view []byte, delim byte, budget int) ([]byte, int, error) {
	if budget <= 0 {
		return nil, 0, ErrDelimiterNotFound
	}
	scan := view
	if len(scan) > budget {
		scan = scan[:budget]
	}
	if i := bytes.IndexByte(scan, delim); i >= 0 {
		return view[:i], i + 1, nil
	}
	if len(view) < budget {
		return nil, 0, shortErr(1)
	}
	return nil, 0, ErrDelimiterNotFound
}

// DecodeBytes returns the first size bytes of view.
//
// The returned slice aliases view and is only valid until the view changes.
func DecodeBytes(view []byte, size int) ([]byte, int, error) {
	if size < 0 {
		return nil, 0, ErrNegativeCount
	}
	if len(view) < size {
		return nil, 0, shortErr(size - len(view))
	}
	return view[:size], size, nil
}

// DecodeWhile returns the longest prefix of view whose bytes all satisfy
// pred. The byte that ends the run is not part of the consumed count. A run
// of budget or more matching bytes fails with ErrBudgetExceeded.
//
// A run that reaches the end of view is incomplete, because the next byte
// could extend it. atEOF tells the decoder no further input exists, which
// turns such a run into a complete value, the same way a bufio.SplitFunc
// treats its atEOF argument.
//
// The returned slice aliases view and is only valid until the view changes.
func DecodeWhile(view []byte, pred func(byte) bool, budget int, atEOF bool) ([]byte, int, error) {
	if budget <= 0 {
		return nil, 0, ErrBudgetExceeded
	}
	scan := view
	if len(scan) > budget {
		scan = scan[:budget]
	}
	i := 0
	for i < len(scan) && pred(scan[i]) {
		i++
	}
	if i < len(scan) {
		return view[:i], i, nil
	}
	if len(view) >= budget {
		return nil, 0, ErrBudgetExceeded
	}
	if atEOF {
		return view[:i], i, nil
	}
	return nil, 0, shortErr(1)
}
