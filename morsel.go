// Package morsel decodes typed values from byte buffers that fill
// incrementally, such as sockets, pipes and chunked files.
//
// The package is split into two layers. The bottom layer is a set of pure
// decode functions (DecodeUint, DecodeUntil, ...) that inspect a byte view
// and either produce a value with its consumed count, report how many more
// bytes they need, or reject the input. They never retain or mutate the
// view. The top layer is Cursor, which drives those functions against a
// refillable Buffer and turns "need more bytes" into refill-and-retry, so
// callers see a blocking-style API over non-blocking input.
//
// A value is consumed only when it decodes completely. Any error leaves the
// buffered window exactly as it was, so a short read can be retried once
// more input arrives.
package morsel

import (
	"encoding/binary"

	"golang.org/x/exp/constraints"
)

// Byte-order shorthands accepted by every operation that takes a
// binary.ByteOrder or binary.AppendByteOrder.
var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
)

// Roundup rounds n up to the nearest multiple of align.
func Roundup[T constraints.Integer](n, align T) T { return (n + (align - 1)) &^ (align - 1) }
