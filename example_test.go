package morsel_test

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/oy3o/morsel"
)

// mediaType is the parsed form of a string like "text/html; charset=utf-8".
type mediaType struct {
	base   string
	sub    string
	params map[string]string
}

func isHTTPSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }

func isParamGap(b byte) bool { return b == ';' || isHTTPSpace(b) }

// parseMediaType scans a media type off any io.Reader without ever loading
// more than the cursor's window.
func parseMediaType(r io.Reader) (*mediaType, error) {
	c := morsel.NewCursor(morsel.NewStreamBuffer(r))

	base, err := c.ReadUntil('/', 128)
	if err != nil {
		return nil, err
	}
	sub, err := c.ReadWhile(func(b byte) bool { return b != ';' }, 128)
	if err != nil {
		return nil, err
	}
	mt := &mediaType{base: string(base), sub: string(sub), params: map[string]string{}}

	for {
		if _, err := c.DiscardWhile(isParamGap); err != nil {
			return nil, err
		}
		name, err := c.ReadWhile(func(b byte) bool { return b != '=' && b != ';' }, 128)
		if err == io.EOF {
			return mt, nil
		}
		if err != nil {
			return nil, err
		}
		sep, err := c.ReadUint8()
		if err == io.EOF {
			return mt, nil
		}
		if err != nil {
			return nil, err
		}
		if sep == ';' {
			continue // parameter without a value
		}
		val, err := c.ReadWhile(func(b byte) bool { return b != ';' }, 128)
		if err != nil && err != io.EOF {
			return nil, err
		}
		mt.params[strings.ToLower(string(name))] = strings.ToLower(string(val))
	}
}

func Example_parseMediaType() {
	mt, err := parseMediaType(strings.NewReader("text/html; charset=UTF-8; q=0.9"))
	if err != nil {
		fmt.Println("parse:", err)
		return
	}
	fmt.Println(mt.base)
	fmt.Println(mt.sub)
	fmt.Println(mt.params["charset"])
	fmt.Println(mt.params["q"])
	// Output:
	// text
	// html
	// utf-8
	// 0.9
}

func ExampleWriter() {
	var buf bytes.Buffer
	w := morsel.NewWriter(&buf)

	w.WriteUint32(0xFEEDFACE, morsel.BE)
	w.WriteDelimited([]byte("header"), '\n')
	w.WritePrefixed([]byte("hi"), 1, morsel.BE)

	if _, err := w.Result(); err != nil {
		fmt.Println("write:", err)
		return
	}
	fmt.Printf("% x\n", buf.Bytes())
	// Output:
	// fe ed fa ce 68 65 61 64 65 72 0a 02 68 69
}

func ExampleRead() {
	c := morsel.NewCursor(morsel.NewSliceBuffer([]byte{0x01, 0x2C, 0xFE, 0xFF}))

	big, _ := morsel.Read[uint16](c, morsel.BE)
	little, _ := morsel.Read[int16](c, morsel.LE)
	fmt.Println(big, little)
	// Output:
	// 300 -2
}

func ExampleCursor_ReadPrefixed() {
	frame := []byte{0x00, 0x05, 'h', 'e', 'l', 'l', 'o'}
	c := morsel.NewCursor(morsel.NewSliceBuffer(frame))

	payload, err := c.ReadPrefixed(morsel.BE, 2, 1024)
	if err != nil {
		fmt.Println("read:", err)
		return
	}
	fmt.Printf("%s\n", payload)
	// Output:
	// hello
}
