package terminfo

import (
	"fmt"

	"github.com/samcharles93/keyinfo/internal/rawbuf"
)

const (
	// MagicLegacy marks files whose numbers are 16 bits wide.
	MagicLegacy int16 = 0o432
	// MagicExtendedNumbers marks files whose numbers are 32 bits wide.
	MagicExtendedNumbers int16 = 0o1036

	LegacyHeaderSize   = 12
	ExtendedHeaderSize = 10
)

type LegacyHeader struct {
	Magic              int16
	NamesSize          int16
	BooleansCount      int16
	NumbersCount       int16
	StringTableEntries int16
	StringTableSize    int16
}

// NumberWidth returns the byte width of one number capability, or 0 for an
// unknown magic.
func (h LegacyHeader) NumberWidth() int {
	switch h.Magic {
	case MagicLegacy:
		return 2
	case MagicExtendedNumbers:
		return 4
	default:
		return 0
	}
}

// Validate checks the magic and that no count is negative.
func (h LegacyHeader) Validate() error {
	if h.NumberWidth() == 0 {
		return fmt.Errorf("%w: %#o", ErrBadMagic, uint16(h.Magic))
	}
	for _, f := range []struct {
		name string
		v    int16
	}{
		{"names_size", h.NamesSize},
		{"booleans_count", h.BooleansCount},
		{"numbers_count", h.NumbersCount},
		{"string_table_entries", h.StringTableEntries},
		{"string_table_size", h.StringTableSize},
	} {
		if f.v < 0 {
			return fmt.Errorf("%w: %s is %d", ErrCorruptHeader, f.name, f.v)
		}
	}
	return nil
}

// ParseHeader decodes and validates the legacy header at the start of data.
func ParseHeader(data []byte) (LegacyHeader, error) {
	var words [6]int16
	if _, ok := rawbuf.ReadI16sLE(data, 0, words[:]); !ok {
		return LegacyHeader{}, fmt.Errorf("%w: header needs %d bytes, have %d", ErrTruncated, LegacyHeaderSize, len(data))
	}
	h := LegacyHeader{
		Magic:              words[0],
		NamesSize:          words[1],
		BooleansCount:      words[2],
		NumbersCount:       words[3],
		StringTableEntries: words[4],
		StringTableSize:    words[5],
	}
	if err := h.Validate(); err != nil {
		return LegacyHeader{}, err
	}
	return h, nil
}

type ExtendedHeader struct {
	BooleansCount      int16
	NumbersCount       int16
	StringsCount       int16
	StringTableEntries int16
	StringTableSize    int16
}

// ParseExtendedHeader decodes the extended header at off.
func ParseExtendedHeader(data []byte, off int) (ExtendedHeader, error) {
	var words [5]int16
	if _, ok := rawbuf.ReadI16sLE(data, off, words[:]); !ok {
		return ExtendedHeader{}, fmt.Errorf("%w: extended header at %#x", ErrTruncated, off)
	}
	h := ExtendedHeader{
		BooleansCount:      words[0],
		NumbersCount:       words[1],
		StringsCount:       words[2],
		StringTableEntries: words[3],
		StringTableSize:    words[4],
	}
	for _, v := range words {
		if v < 0 {
			return ExtendedHeader{}, fmt.Errorf("%w: negative extended count %d", ErrCorruptHeader, v)
		}
	}
	return h, nil
}

// Layout holds the absolute offset of every legacy section.
type Layout struct {
	NumberWidth int
	Names       int
	Booleans    int
	Numbers     int
	IndexTable  int
	StringData  int
	// End is one past the last string data byte.
	End int
	// Extended is End aligned to 2, where an extended header may start.
	Extended int
}

// ComputeLayout accumulates section sizes from h. It never fails; readers
// bound-check every access against the file instead.
func ComputeLayout(h LegacyHeader) Layout {
	l := Layout{NumberWidth: h.NumberWidth()}
	i := LegacyHeaderSize
	l.Names = i
	i += int(h.NamesSize)
	l.Booleans = i
	i += int(h.BooleansCount)
	i = rawbuf.Align(i, 2)
	l.Numbers = i
	i += l.NumberWidth * int(h.NumbersCount)
	l.IndexTable = i
	i += 2 * int(h.StringTableEntries)
	l.StringData = i
	i += int(h.StringTableSize)
	l.End = i
	l.Extended = rawbuf.Align(i, 2)
	return l
}

type ExtendedLayout struct {
	Header     int
	Booleans   int
	Numbers    int
	IndexTable int
	StringData int
}

// ComputeExtendedLayout places the extended sections after the header at
// off, using the number width chosen by the legacy magic.
func ComputeExtendedLayout(off int, h ExtendedHeader, width int) ExtendedLayout {
	l := ExtendedLayout{Header: off}
	i := off + ExtendedHeaderSize
	l.Booleans = i
	i += int(h.BooleansCount)
	i = rawbuf.Align(i, 2)
	l.Numbers = i
	i += width * int(h.NumbersCount)
	l.IndexTable = i
	i += 2 * int(h.StringTableEntries)
	l.StringData = i
	return l
}
