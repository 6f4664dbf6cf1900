package morsel

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenericRead(t *testing.T) {
	t.Run("TypeSelectsWidth", func(t *testing.T) {
		c := NewCursor(NewSliceBuffer([]byte{
			0xAB,       // uint8
			0x01, 0x2C, // uint16 BE
			0xFE, 0xFF, 0xFF, 0xFF, // int32 LE -2
			0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, // uint64 BE
		}))

		u8, err := Read[uint8](c, BE)
		require.NoError(t, err)
		assert.Equal(t, uint8(0xAB), u8)

		u16, err := Read[uint16](c, BE)
		require.NoError(t, err)
		assert.Equal(t, uint16(300), u16)

		i32, err := Read[int32](c, LE)
		require.NoError(t, err)
		assert.Equal(t, int32(-2), i32)

		u64, err := Read[uint64](c, BE)
		require.NoError(t, err)
		assert.Equal(t, uint64(0x0102030405060708), u64)

		assert.EqualValues(t, 15, c.Offset())
	})

	t.Run("SplitAcrossRefills", func(t *testing.T) {
		c := cursorOver([]byte{0x00, 0x00}, []byte{0x01, 0x2C})
		v, err := Read[uint32](c, BE)
		require.NoError(t, err)
		assert.Equal(t, uint32(300), v)
	})

	t.Run("SignReinterpretation", func(t *testing.T) {
		c := NewCursor(NewSliceBuffer([]byte{0xFE, 0xD4}))
		v, err := Read[int16](c, BE)
		require.NoError(t, err)
		assert.Equal(t, int16(-300), v)
	})

	t.Run("SourceTooShort", func(t *testing.T) {
		c := NewCursor(NewSliceBuffer([]byte{0x01, 0x02}))
		_, err := Read[uint32](c, BE)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.Zero(t, c.Offset())
	})
}

func TestGenericPeek(t *testing.T) {
	c := NewCursor(NewSliceBuffer([]byte{0x01, 0x2C}))

	peeked, err := Peek[uint16](c, BE)
	require.NoError(t, err)
	assert.Equal(t, uint16(300), peeked)
	assert.Zero(t, c.Offset(), "a peek consumes nothing")

	read, err := Read[uint16](c, BE)
	require.NoError(t, err)
	assert.Equal(t, peeked, read)
	assert.EqualValues(t, 2, c.Offset())
}

func TestGenericAppend(t *testing.T) {
	t.Run("TypeSelectsWidth", func(t *testing.T) {
		dst, err := Append[uint16](nil, 0xABCD, BE)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xAB, 0xCD}, dst)

		dst, err = Append[int32](dst, -2, LE)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xAB, 0xCD, 0xFE, 0xFF, 0xFF, 0xFF}, dst)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		var buf []byte
		var err error
		buf, err = Append[uint8](buf, 0x7F, BE)
		require.NoError(t, err)
		buf, err = Append[int64](buf, -300, BE)
		require.NoError(t, err)

		c := NewCursor(NewSliceBuffer(buf))

		u8, err := Read[uint8](c, BE)
		require.NoError(t, err)
		assert.Equal(t, uint8(0x7F), u8)

		i64, err := Read[int64](c, BE)
		require.NoError(t, err)
		assert.Equal(t, int64(-300), i64)
	})
}

func TestGenericWrite(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	Write[uint16](w, 300, BE)
	Write[int32](w, -2, LE)
	Write[uint8](w, 0xAA, BE)

	n, err := w.Result()
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)
	assert.Equal(t, []byte{
		0x01, 0x2C, // uint16 BE
		0xFE, 0xFF, 0xFF, 0xFF, // int32 LE
		0xAA, // uint8
	}, buf.Bytes())
}
