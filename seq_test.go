package morsel

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeqRoundTrip(t *testing.T) {
	items := []wireHeader{
		{Magic: 0x4D4F5253, Version: 1, Flags: 0x01, Length: 10},
		{Magic: 0x4D4F5253, Version: 1, Flags: 0x02, Length: 20},
		{Magic: 0x4D4F5253, Version: 2, Flags: 0x04, Length: 30},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	WriteSeq(w, items, BE)
	n, err := w.Result()
	require.NoError(t, err)
	require.EqualValues(t, 36, n)

	// Split mid-item to force resumed decodes.
	raw := buf.Bytes()
	c := cursorOver(raw[:10], raw[10:25], raw[25:])

	got, err := ReadSeq[wireHeader](c, BE, 3)
	require.NoError(t, err)
	assert.Equal(t, items, got)
	assert.EqualValues(t, 36, c.Offset())
}

func TestReadSeq(t *testing.T) {
	t.Run("ZeroCount", func(t *testing.T) {
		c := cursorOver()
		got, err := ReadSeq[wireHeader](c, BE, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("NegativeCount", func(t *testing.T) {
		c := cursorOver()
		_, err := ReadSeq[wireHeader](c, BE, -1)
		assert.ErrorIs(t, err, ErrNegativeCount)
	})

	t.Run("EmptySource", func(t *testing.T) {
		c := cursorOver()
		got, err := ReadSeq[wireHeader](c, BE, 2)
		assert.ErrorIs(t, err, io.EOF)
		assert.Empty(t, got)
	})

	t.Run("EndsAtItemBoundary", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		WriteFixed(w, wireHeader{Magic: 7}, BE)
		_, err := w.Result()
		require.NoError(t, err)

		c := NewCursor(NewSliceBuffer(buf.Bytes()))
		got, err := ReadSeq[wireHeader](c, BE, 2)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF, "the count promised another item")
		require.Len(t, got, 1)
		assert.Equal(t, uint32(7), got[0].Magic)
	})

	t.Run("EndsMidItem", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		WriteSeq(w, []wireHeader{{Magic: 1}, {Magic: 2}}, BE)
		_, err := w.Result()
		require.NoError(t, err)

		c := NewCursor(NewSliceBuffer(buf.Bytes()[:18])) // second item cut in half
		got, err := ReadSeq[wireHeader](c, BE, 2)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		require.Len(t, got, 1)
		assert.Equal(t, uint32(1), got[0].Magic)
		assert.EqualValues(t, 12, c.Offset(), "the half-decoded item is not consumed")
	})

	t.Run("NotFixed", func(t *testing.T) {
		c := cursorOver([]byte{1, 2, 3})
		_, err := ReadSeq[varPayload](c, BE, 1)
		assert.ErrorIs(t, err, ErrNotFixedSize)
	})
}

func TestWriteSeq(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		WriteSeq(w, []wireHeader(nil), BE)
		n, err := w.Result()
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("StopsOnError", func(t *testing.T) {
		w := NewWriterSize(mockFailWriter{}, 4)
		WriteSeq(w, []wireHeader{{Magic: 1}, {Magic: 2}}, BE)
		assert.ErrorIs(t, w.Err(), errBoom)
	})
}
