package terminfo

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func words(ws ...int16) []byte {
	var buf bytes.Buffer
	for _, w := range ws {
		_ = binary.Write(&buf, binary.LittleEndian, w)
	}
	return buf.Bytes()
}

func sampleBuilder() *Builder {
	b := &Builder{
		Names:    "xterm-test|test terminal",
		Booleans: []bool{true, false, true},
		Numbers:  []int32{80, 24},
	}
	b.ReserveStrings(100)
	b.SetString(55, "\x7f")
	b.SetString(87, "\x1bOA")
	b.SetString(59, "\x1b[3~")
	b.ExtBooleans = []NamedBool{{Name: "AX", Value: true}}
	b.ExtNumbers = []NamedNumber{{Name: "RGB", Value: 8}}
	b.ExtStrings = []Capability{
		{Name: "kDC", Value: []byte("\x1b[3;2~")},
		{Name: "kUP5", Value: []byte("\x1b[1;5A")},
	}
	return b
}

func TestParseMinimalLegacy(t *testing.T) {
	t.Parallel()

	data := words(MagicLegacy, 0, 0, 0, 1, 4)
	data = append(data, words(0)...)
	data = append(data, 'A', 0, 0, 0)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Layout.IndexTable != 12 || f.Layout.StringData != 14 || f.Layout.End != 18 {
		t.Fatalf("layout = %+v", f.Layout)
	}
	if f.Extended != nil {
		t.Fatalf("unexpected extended section")
	}
	s, err := f.LegacyString(0)
	if err != nil || string(s) != "A" {
		t.Fatalf("LegacyString(0) = %q, %v", s, err)
	}
	if names := f.Names(); names != nil {
		t.Fatalf("names = %q", names)
	}
}

func TestParseHeaderErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		data []byte
		want error
	}{
		{"short", []byte{0x1a, 0x01, 0, 0}, ErrTruncated},
		{"bad magic", words(0o777, 0, 0, 0, 0, 0), ErrBadMagic},
		{"negative count", words(MagicLegacy, 0, -1, 0, 0, 0), ErrCorruptHeader},
		{"short extended header", append(words(MagicLegacy, 0, 0, 0, 0, 0), 1, 0, 2), ErrTruncated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.data); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLayoutProperties(t *testing.T) {
	t.Parallel()

	for _, h := range []LegacyHeader{
		{Magic: MagicLegacy, NamesSize: 7, BooleansCount: 3, NumbersCount: 5, StringTableEntries: 9, StringTableSize: 31},
		{Magic: MagicExtendedNumbers, NamesSize: 8, BooleansCount: 0, NumbersCount: 1, StringTableEntries: 0, StringTableSize: 0},
		{Magic: MagicLegacy, NamesSize: 1, BooleansCount: 1, NumbersCount: 0, StringTableEntries: 414, StringTableSize: 1500},
	} {
		l := ComputeLayout(h)
		if l != ComputeLayout(h) {
			t.Fatalf("layout not deterministic for %+v", h)
		}
		offs := []int{l.Names, l.Booleans, l.Numbers, l.IndexTable, l.StringData, l.End, l.Extended}
		if !slices.IsSorted(offs) {
			t.Fatalf("offsets decrease: %v", offs)
		}
		if l.Numbers%2 != 0 || l.IndexTable%2 != 0 || l.StringData%2 != 0 || l.Extended%2 != 0 {
			t.Fatalf("offsets not 2-aligned: %+v", l)
		}
	}

	l := ComputeLayout(LegacyHeader{Magic: MagicExtendedNumbers, NamesSize: 3, BooleansCount: 2, NumbersCount: 2})
	if l.Numbers != 18 || l.IndexTable != 26 {
		t.Fatalf("wide layout = %+v", l)
	}
}

func TestLegacyStringErrors(t *testing.T) {
	t.Parallel()

	b := &Builder{Names: "x"}
	b.ReserveStrings(4)
	b.SetString(1, "ok")
	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := f.LegacyString(0); !errors.Is(err, ErrAbsent) {
		t.Fatalf("absent: %v", err)
	}
	if _, err := f.LegacyString(4); !errors.Is(err, ErrOrdinalRange) {
		t.Fatalf("range: %v", err)
	}

	// Point ordinal 2 past the string table.
	binary.LittleEndian.PutUint16(data[f.Layout.IndexTable+4:], 40)
	if _, err := f.LegacyString(2); !errors.Is(err, ErrOffsetRange) {
		t.Fatalf("offset: %v", err)
	}

	// Drop the terminator of the only string.
	data[f.Layout.StringData+2] = 'x'
	if _, err := f.LegacyString(1); !errors.Is(err, ErrCorruptString) {
		t.Fatalf("corrupt: %v", err)
	}
}

func TestBuilderRoundTrip(t *testing.T) {
	t.Parallel()

	for _, wide := range []bool{false, true} {
		b := sampleBuilder()
		b.WideNumbers = wide
		data, err := b.Bytes()
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		f, err := Parse(data)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if got := f.Layout.NumberWidth; got != map[bool]int{false: 2, true: 4}[wide] {
			t.Fatalf("width = %d", got)
		}
		if got := f.Names(); !slices.Equal(got, []string{"xterm-test", "test terminal"}) {
			t.Fatalf("names = %q", got)
		}
		for ord, want := range map[int]string{55: "\x7f", 87: "\x1bOA", 59: "\x1b[3~"} {
			s, err := f.LegacyString(ord)
			if err != nil || string(s) != want {
				t.Fatalf("LegacyString(%d) = %q, %v", ord, s, err)
			}
		}
		if f.Extended == nil || f.Extended.StringsCount != 2 {
			t.Fatalf("extended = %+v", f.Extended)
		}
		caps, truncated, err := f.ExtendedCapabilities()
		if err != nil || truncated {
			t.Fatalf("extended caps: %v truncated=%v", err, truncated)
		}
		if len(caps) != 2 || caps[0].Name != "kDC" || string(caps[1].Value) != "\x1b[1;5A" {
			t.Fatalf("caps = %+v", caps)
		}
	}
}

func TestAbsentStringSkippedWithoutError(t *testing.T) {
	t.Parallel()

	data := words(MagicLegacy, 0, 0, 0, 1, 2)
	data = append(data, words(-1)...)
	data = append(data, 'z', 0)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := f.LegacyString(0); !errors.Is(err, ErrAbsent) {
		t.Fatalf("err = %v, want ErrAbsent", err)
	}
}

func TestExtendedNamesTruncated(t *testing.T) {
	t.Parallel()

	data, err := sampleBuilder().Bytes()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// Cut the terminator off the final name.
	data = data[:len(data)-1]

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	names, truncated := f.ExtendedNames()
	if !truncated || !slices.Equal(names, []string{"kDC"}) {
		t.Fatalf("names = %q truncated=%v", names, truncated)
	}
	caps, truncated, err := f.ExtendedCapabilities()
	if err != nil || !truncated || len(caps) != 1 {
		t.Fatalf("caps = %+v truncated=%v err=%v", caps, truncated, err)
	}
}

func TestExtendedStringUnterminated(t *testing.T) {
	t.Parallel()

	b := &Builder{Names: "x", ExtStrings: []Capability{{Name: "kUP", Value: []byte("\x1b[1;2A")}}}
	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// Keep only the value bytes, without terminator or names.
	f.Data = data[:f.ExtendedLayout.StringData+6]
	if _, err := f.ExtendedStrings(); !errors.Is(err, ErrCorruptString) {
		t.Fatalf("err = %v, want ErrCorruptString", err)
	}
}

func TestOpenAndReaderAt(t *testing.T) {
	t.Parallel()

	data, err := sampleBuilder().Bytes()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	path := filepath.Join(t.TempDir(), "xterm-test")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(f.Data, data) {
		t.Fatalf("mapped data differs")
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if f.Data != nil {
		t.Fatalf("close should drop data")
	}

	short := filepath.Join(t.TempDir(), "short")
	if err := os.WriteFile(short, data[:4], 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Open(short); !errors.Is(err, ErrTruncated) {
		t.Fatalf("short open err = %v", err)
	}
}
