package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oy3o/morsel"
)

func TestDumpField(t *testing.T) {
	data := []byte{
		0x01, 0x2C, // u16 BE 300
		'h', 'e', 'l', 'l', 'o', '\n', // until
		0xDE, 0xAD, // bytes
		0xFF,       // skip
		0x00,       // align padding to 12
		0x02, 'h', 'i', // prefixed
		0xFF, // i8 -1
	}
	fields := []field{
		{name: "size", typ: "u16", order: morsel.BE},
		{name: "line", typ: "until", delim: '\n', budget: 64},
		{name: "tag", typ: "bytes", len: 2},
		{typ: "skip", len: 1},
		{typ: "align", len: 4},
		{name: "body", typ: "prefixed", order: morsel.BE, width: 1, max: 64},
		{name: "temp", typ: "i8"},
	}

	var out bytes.Buffer
	cur := morsel.NewCursor(morsel.NewSliceBuffer(data))
	for _, f := range fields {
		require.NoError(t, dumpField(&out, cur, f))
	}

	expected := "size = 300\n" +
		"line = \"hello\"\n" +
		"tag = dead\n" +
		"body = 6869\n" +
		"temp = -1\n"
	assert.Equal(t, expected, out.String())
	assert.EqualValues(t, len(data), cur.Offset())
}

func TestDumpFieldErrors(t *testing.T) {
	t.Run("TruncatedInput", func(t *testing.T) {
		cur := morsel.NewCursor(morsel.NewSliceBuffer([]byte{0x01}))
		err := dumpField(io.Discard, cur, field{name: "size", typ: "u32", order: morsel.BE})
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("UnknownType", func(t *testing.T) {
		cur := morsel.NewCursor(morsel.NewSliceBuffer(nil))
		err := dumpField(io.Discard, cur, field{name: "x", typ: "f32"})
		assert.ErrorContains(t, err, "unknown field type")
	})
}

// TestLayoutEndToEnd drives a loaded layout against a composed stream.
func TestLayoutEndToEnd(t *testing.T) {
	fields, err := loadLayout(writeLayout(t, `
[[field]]
name = "magic"
type = "u32"

[[field]]
name = "version"
type = "u16"
order = "le"

[[field]]
type = "align"
len = 8

[[field]]
name = "payload"
type = "prefixed"
width = 2
`))
	require.NoError(t, err)

	var frame bytes.Buffer
	w := morsel.NewWriter(&frame)
	w.WriteUint32(0xFEEDFACE, morsel.BE)
	w.WriteUint16(7, morsel.LE)
	w.Align(8)
	w.WritePrefixed([]byte{0xCA, 0xFE}, 2, morsel.BE)
	_, err = w.Result()
	require.NoError(t, err)

	var out bytes.Buffer
	cur := morsel.NewCursor(morsel.NewStreamBuffer(&frame))
	for _, f := range fields {
		require.NoError(t, dumpField(&out, cur, f))
	}

	expected := "magic = 4277009102\n" +
		"version = 7\n" +
		"payload = cafe\n"
	assert.Equal(t, expected, out.String())
}
