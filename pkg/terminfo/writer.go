package terminfo

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Builder assembles a compiled terminfo entry. It writes the same layout the
// reader expects, which makes it suitable for fixtures and for re-emitting a
// trimmed entry.
type Builder struct {
	// Names is the '|' separated names line, without the terminating NUL.
	Names    string
	Booleans []bool
	Numbers  []int32
	// WideNumbers selects the 32-bit number format.
	WideNumbers bool

	strings []stringSlot

	ExtBooleans []NamedBool
	ExtNumbers  []NamedNumber
	ExtStrings  []Capability
}

type stringSlot struct {
	value string
	set   bool
}

type NamedBool struct {
	Name  string
	Value bool
}

type NamedNumber struct {
	Name  string
	Value int32
}

var errTooLarge = errors.New("terminfo: section exceeds 16-bit limits")

// SetString sets the legacy string capability at ordinal, growing the index
// table as needed. Ordinals never set are written as absent.
func (b *Builder) SetString(ordinal int, value string) {
	for len(b.strings) <= ordinal {
		b.strings = append(b.strings, stringSlot{})
	}
	b.strings[ordinal] = stringSlot{value: value, set: true}
}

// ReserveStrings makes the index table at least n entries long.
func (b *Builder) ReserveStrings(n int) {
	for len(b.strings) < n {
		b.strings = append(b.strings, stringSlot{})
	}
}

func (b *Builder) hasExtended() bool {
	return len(b.ExtBooleans)+len(b.ExtNumbers)+len(b.ExtStrings) > 0
}

// Bytes encodes the entry.
func (b *Builder) Bytes() ([]byte, error) {
	width, magic := 2, MagicLegacy
	if b.WideNumbers {
		width, magic = 4, MagicExtendedNumbers
	}

	var table bytes.Buffer
	index := make([]int16, len(b.strings))
	for i, s := range b.strings {
		if !s.set {
			index[i] = -1
			continue
		}
		off, err := fit16(table.Len())
		if err != nil {
			return nil, err
		}
		index[i] = off
		table.WriteString(s.value)
		table.WriteByte(0)
	}

	hdr := make([]int, 6)
	hdr[0] = int(magic)
	hdr[1] = len(b.Names) + 1
	hdr[2] = len(b.Booleans)
	hdr[3] = len(b.Numbers)
	hdr[4] = len(b.strings)
	hdr[5] = table.Len()

	var out bytes.Buffer
	if err := writeWords(&out, hdr...); err != nil {
		return nil, err
	}
	out.WriteString(b.Names)
	out.WriteByte(0)
	writeBools(&out, b.Booleans)
	pad(&out)
	for _, n := range b.Numbers {
		writeNumber(&out, n, width)
	}
	for _, off := range index {
		_ = binary.Write(&out, binary.LittleEndian, off)
	}
	out.Write(table.Bytes())

	if !b.hasExtended() {
		return out.Bytes(), nil
	}

	pad(&out)
	if err := b.writeExtended(&out, width); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (b *Builder) writeExtended(out *bytes.Buffer, width int) error {
	var values, names bytes.Buffer
	var valueOffsets, nameOffsets []int
	for _, s := range b.ExtStrings {
		valueOffsets = append(valueOffsets, values.Len())
		values.Write(s.Value)
		values.WriteByte(0)
	}
	addName := func(name string) {
		nameOffsets = append(nameOffsets, names.Len())
		names.WriteString(name)
		names.WriteByte(0)
	}
	for _, c := range b.ExtBooleans {
		addName(c.Name)
	}
	for _, c := range b.ExtNumbers {
		addName(c.Name)
	}
	for _, c := range b.ExtStrings {
		addName(c.Name)
	}

	entries := len(valueOffsets) + len(nameOffsets)
	if err := writeWords(out,
		len(b.ExtBooleans),
		len(b.ExtNumbers),
		len(b.ExtStrings),
		entries,
		values.Len()+names.Len(),
	); err != nil {
		return err
	}

	bools := make([]bool, len(b.ExtBooleans))
	for i, c := range b.ExtBooleans {
		bools[i] = c.Value
	}
	writeBools(out, bools)
	pad(out)
	for _, c := range b.ExtNumbers {
		writeNumber(out, c.Value, width)
	}
	if err := writeWords(out, valueOffsets...); err != nil {
		return err
	}
	if err := writeWords(out, nameOffsets...); err != nil {
		return err
	}
	out.Write(values.Bytes())
	out.Write(names.Bytes())
	return nil
}

func fit16(v int) (int16, error) {
	if v < math.MinInt16 || v > math.MaxInt16 {
		return 0, fmt.Errorf("%w: %d", errTooLarge, v)
	}
	return int16(v), nil
}

func writeWords(out *bytes.Buffer, words ...int) error {
	for _, w := range words {
		v, err := fit16(w)
		if err != nil {
			return err
		}
		_ = binary.Write(out, binary.LittleEndian, v)
	}
	return nil
}

func writeBools(out *bytes.Buffer, bools []bool) {
	for _, v := range bools {
		if v {
			out.WriteByte(1)
		} else {
			out.WriteByte(0)
		}
	}
}

func writeNumber(out *bytes.Buffer, v int32, width int) {
	if width == 2 {
		_ = binary.Write(out, binary.LittleEndian, int16(v))
		return
	}
	_ = binary.Write(out, binary.LittleEndian, v)
}

func pad(out *bytes.Buffer) {
	if out.Len()%2 != 0 {
		out.WriteByte(0)
	}
}
