package main

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/oy3o/morsel"
)

const (
	defaultBudget = 4096
	defaultWidth  = 4
	defaultMax    = 1 << 20
)

// fileLayout mirrors the layout TOML: a sequence of [[field]] tables read
// in order against the input stream.
type fileLayout struct {
	Field []fileField `toml:"field"`
}

type fileField struct {
	Name   string `toml:"name"`
	Type   string `toml:"type"`
	Order  string `toml:"order"`  // "be" (default) or "le"
	Len    int    `toml:"len"`    // bytes, skip, align
	Delim  int    `toml:"delim"`  // until: terminator byte value
	Budget int    `toml:"budget"` // until: scan allowance
	Width  int    `toml:"width"`  // prefixed: length prefix width
	Max    int    `toml:"max"`    // prefixed: payload cap
}

// field is a validated fileField with defaults applied.
type field struct {
	name   string
	typ    string
	order  binary.ByteOrder
	len    int
	delim  byte
	budget int
	width  int
	max    int
}

func loadLayout(path string) ([]field, error) {
	var raw fileLayout
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load layout: unknown key %q", undecoded[0].String())
	}
	if len(raw.Field) == 0 {
		return nil, fmt.Errorf("load layout: no [[field]] tables in %s", path)
	}

	fields := make([]field, 0, len(raw.Field))
	for i, rf := range raw.Field {
		f, err := resolveField(rf)
		if err != nil {
			return nil, fmt.Errorf("field %d (%s): %w", i, rf.Name, err)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func resolveField(rf fileField) (field, error) {
	f := field{
		name:   strings.TrimSpace(rf.Name),
		typ:    strings.ToLower(strings.TrimSpace(rf.Type)),
		order:  morsel.BE,
		len:    rf.Len,
		budget: defaultBudget,
		width:  defaultWidth,
		max:    defaultMax,
	}

	switch strings.ToLower(strings.TrimSpace(rf.Order)) {
	case "", "be":
	case "le":
		f.order = morsel.LE
	default:
		return field{}, fmt.Errorf("unknown order %q", rf.Order)
	}

	switch f.typ {
	case "u8", "u16", "u32", "u64", "i8", "i16", "i32", "i64":
	case "bytes", "skip":
		if f.len <= 0 {
			return field{}, fmt.Errorf("%s requires len > 0", f.typ)
		}
	case "align":
		if f.len <= 1 {
			return field{}, fmt.Errorf("align requires len > 1")
		}
	case "until":
		if rf.Delim < 0 || rf.Delim > 0xFF {
			return field{}, fmt.Errorf("delim %d out of byte range", rf.Delim)
		}
		f.delim = byte(rf.Delim)
		if rf.Budget != 0 {
			if rf.Budget < 0 {
				return field{}, fmt.Errorf("budget %d must be positive", rf.Budget)
			}
			f.budget = rf.Budget
		}
	case "prefixed":
		if rf.Width != 0 {
			switch rf.Width {
			case 1, 2, 4, 8:
				f.width = rf.Width
			default:
				return field{}, fmt.Errorf("width %d must be 1, 2, 4 or 8", rf.Width)
			}
		}
		if rf.Max != 0 {
			if rf.Max < 0 {
				return field{}, fmt.Errorf("max %d must be positive", rf.Max)
			}
			f.max = rf.Max
		}
	case "":
		return field{}, fmt.Errorf("missing type")
	default:
		return field{}, fmt.Errorf("unknown type %q", rf.Type)
	}

	switch f.typ {
	case "skip", "align":
	default:
		if f.name == "" {
			return field{}, fmt.Errorf("%s requires a name", f.typ)
		}
	}
	return f, nil
}
