// Command morseldump decodes a binary stream field by field, driven by a
// TOML layout file, and prints one "name = value" line per field. It exists
// both as a quick protocol inspection tool and as an end-to-end exercise of
// the morsel cursor against real files and pipes.
//
// Usage:
//
//	morseldump -layout frame.toml -in capture.bin
//	cat capture.bin | morseldump -layout frame.toml -v
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oy3o/morsel"
	"github.com/rs/zerolog"
)

func main() {
	layoutPath := flag.String("layout", "", "layout .toml describing the fields to decode")
	inPath := flag.String("in", "-", "input file (or - for stdin)")
	verbose := flag.Bool("v", false, "log each field as it decodes")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("app", "morseldump").Logger()
	if !*verbose {
		logger = logger.Level(zerolog.WarnLevel)
	}

	if *layoutPath == "" {
		fmt.Fprintln(os.Stderr, "morseldump: -layout is required")
		flag.Usage()
		os.Exit(2)
	}

	fields, err := loadLayout(*layoutPath)
	if err != nil {
		logger.Error().Err(err).Str("path", *layoutPath).Msg("bad layout")
		os.Exit(1)
	}
	logger.Debug().Int("fields", len(fields)).Str("path", *layoutPath).Msg("layout loaded")

	var in io.Reader = os.Stdin
	if *inPath != "-" {
		f, err := os.Open(*inPath)
		if err != nil {
			logger.Error().Err(err).Msg("open input")
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	cur := morsel.NewCursor(morsel.NewStreamBuffer(in))
	for i, f := range fields {
		if err := dumpField(os.Stdout, cur, f); err != nil {
			logger.Error().Err(err).
				Str("field", f.name).
				Int("index", i).
				Int64("offset", cur.Offset()).
				Msg("decode failed")
			os.Exit(1)
		}
		logger.Debug().Str("field", f.name).Str("type", f.typ).Int64("offset", cur.Offset()).Msg("decoded")
	}
}

// dumpField decodes one field from the cursor and prints it to w. Fields
// with no value (skip, align) print nothing.
func dumpField(w io.Writer, cur *morsel.Cursor, f field) error {
	switch f.typ {
	case "u8":
		v, err := cur.ReadUint8()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s = %d\n", f.name, v)
	case "u16":
		v, err := cur.ReadUint16(f.order)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s = %d\n", f.name, v)
	case "u32":
		v, err := cur.ReadUint32(f.order)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s = %d\n", f.name, v)
	case "u64":
		v, err := cur.ReadUint64(f.order)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s = %d\n", f.name, v)
	case "i8":
		v, err := cur.ReadInt8()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s = %d\n", f.name, v)
	case "i16":
		v, err := cur.ReadInt16(f.order)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s = %d\n", f.name, v)
	case "i32":
		v, err := cur.ReadInt32(f.order)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s = %d\n", f.name, v)
	case "i64":
		v, err := cur.ReadInt64(f.order)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s = %d\n", f.name, v)
	case "bytes":
		v, err := cur.ReadExact(f.len)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s = %x\n", f.name, v)
	case "until":
		v, err := cur.ReadUntil(f.delim, f.budget)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s = %q\n", f.name, v)
	case "prefixed":
		v, err := cur.ReadPrefixed(f.order, f.width, f.max)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s = %x\n", f.name, v)
	case "skip":
		if _, err := cur.Discard(f.len); err != nil {
			return err
		}
	case "align":
		if err := cur.Align(f.len); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown field type %q", f.typ)
	}
	return nil
}
