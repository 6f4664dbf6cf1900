package morsel

import (
	"errors"
	"fmt"
)

var (
	// ErrShortInput indicates the buffered window ended before a complete
	// value. It is retryable: refill the buffer and decode again. Use
	// errors.As with *ShortInputError to learn how many bytes are missing.
	ErrShortInput = errors.New("morsel: short input")

	// ErrBudgetExceeded indicates refilling was attempted repeatedly without
	// the buffer growing, or a bounded scan ran out of its allowance.
	ErrBudgetExceeded = errors.New("morsel: refill budget exceeded")

	// ErrDelimiterNotFound indicates a delimiter scan exhausted its budget
	// before the delimiter byte appeared.
	ErrDelimiterNotFound = errors.New("morsel: delimiter not found within budget")

	// ErrConsumeRange indicates a Consume call asked for more bytes than the
	// buffered window holds.
	ErrConsumeRange = errors.New("morsel: consume beyond buffered window")

	// ErrInvalidWidth indicates an integer width other than 1, 2, 4 or 8.
	ErrInvalidWidth = errors.New("morsel: integer width must be 1, 2, 4 or 8 bytes")

	// ErrNegativeCount indicates a negative length or count argument.
	ErrNegativeCount = errors.New("morsel: negative count")

	// ErrLengthLimit indicates a decoded length prefix exceeds the caller's
	// limit. Nothing is consumed, including the prefix itself.
	ErrLengthLimit = errors.New("morsel: length prefix exceeds limit")

	// ErrLengthOverflow indicates a value is too long for its length prefix
	// to represent in the requested width.
	ErrLengthOverflow = errors.New("morsel: value too long for length prefix width")

	// ErrDelimiterCollision indicates a delimited value contains the
	// delimiter byte and could not be read back unambiguously.
	ErrDelimiterCollision = errors.New("morsel: value contains the delimiter")

	// ErrNotFixedSize indicates a type with no fixed binary encoding was
	// passed to ReadFixed or WriteFixed.
	ErrNotFixedSize = errors.New("morsel: type does not have a fixed binary size")
)

// ShortInputError reports an incomplete value in the buffered window and
// carries the minimum number of additional bytes a retry needs. It unwraps
// to ErrShortInput.
type ShortInputError struct {
	Need int
}

func (e *ShortInputError) Error() string {
	return fmt.Sprintf("morsel: short input: need %d more bytes", e.Need)
}

func (e *ShortInputError) Unwrap() error { return ErrShortInput }

// Interned errors for the small hints the fixed-width decoders emit, so the
// refill-retry hot path does not allocate.
var shortNeed = [...]*ShortInputError{
	{Need: 1}, {Need: 2}, {Need: 3}, {Need: 4},
	{Need: 5}, {Need: 6}, {Need: 7}, {Need: 8},
}

func shortErr(need int) *ShortInputError {
	if need >= 1 && need <= len(shortNeed) {
		return shortNeed[need-1]
	}
	return &ShortInputError{Need: need}
}
