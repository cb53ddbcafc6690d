package loader

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samcharles93/keyinfo/internal/logger"
	"github.com/samcharles93/keyinfo/pkg/keys"
	"github.com/samcharles93/keyinfo/pkg/keytable"
	"github.com/samcharles93/keyinfo/pkg/terminfo"
)

func quietCtx() context.Context {
	return logger.WithContext(context.Background(), logger.Discard())
}

// xtermLike builds an entry with a handful of the usual xterm key strings.
func xtermLike(t *testing.T) []byte {
	t.Helper()

	b := &terminfo.Builder{Names: "xterm-fixture|fixture terminal"}
	b.ReserveStrings(270)
	b.SetString(55, "\x7f")       // kbs
	b.SetString(59, "\x1b[3~")    // kdch1
	b.SetString(66, "\x1bOP")     // kf1
	b.SetString(71, "\x1b[15~")   // kf5
	b.SetString(77, "\x1b[2$")    // kich1, no pattern
	b.SetString(87, "\x1bOA")     // kcuu1
	b.SetString(141, "\x1bOA")    // kb2, collides with kcuu1
	b.SetString(148, "\x1b[Z")    // kcbt
	b.SetString(218, "\x1b[1;2P") // kf13
	b.SetString(230, "\x1b[1;5P") // kf25
	b.ExtBooleans = []terminfo.NamedBool{{Name: "AX", Value: true}}
	b.ExtStrings = []terminfo.Capability{
		{Name: "kDC", Value: []byte("\x1b[3;2~")},
		{Name: "kLFT3", Value: []byte("\x1b[1;5D")},
		{Name: "XM", Value: []byte("\x1b[?1006;1000%?%p1%{1}%=%th%el%;")},
		{Name: "kUP5", Value: []byte("\x1b[1;5A")},
	}
	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("build fixture: %v", err)
	}
	return data
}

func TestLoadSingleByteOrdinal(t *testing.T) {
	t.Parallel()

	var data []byte
	for _, w := range []int16{0o432, 0, 0, 0, 1, 4, 0} {
		data = binary.LittleEndian.AppendUint16(data, uint16(w))
	}
	data = append(data, 'A', 0, 0, 0)

	res, err := LoadBytes(quietCtx(), data, Options{
		Legacy: []LegacyCapability{{Ordinal: 0, Name: "a", Key: keys.KeyID('A')}},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, ok := res.Table.Direct().Get('A'); !ok || got != keys.KeyID('A') {
		t.Fatalf("slot 'A' = %v, %v", got, ok)
	}
	if len(res.Legacy) != 1 || res.Legacy[0].Outcome.Placement != keytable.PlacedDirect {
		t.Fatalf("legacy = %+v", res.Legacy)
	}
}

func TestLoadSkipsAbsentSilently(t *testing.T) {
	t.Parallel()

	var data []byte
	for _, w := range []int16{0o432, 0, 0, 0, 1, 2, -1} {
		data = binary.LittleEndian.AppendUint16(data, uint16(w))
	}
	data = append(data, 'A', 0)

	res, err := LoadBytes(quietCtx(), data, Options{
		Legacy: []LegacyCapability{{Ordinal: 0, Name: "a", Key: keys.KeyID('A')}},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Legacy) != 0 || len(res.Issues) != 0 || res.Table.Direct().Len() != 0 {
		t.Fatalf("absent capability left a trace: %+v", res)
	}
}

func TestLoadFixture(t *testing.T) {
	t.Parallel()

	res, err := LoadBytes(quietCtx(), xtermLike(t), Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	direct := map[int]keys.KeyID{
		0x7f: keys.Backspace,
		2:    keys.Delete,
		'P':  keys.F1,
		14:   keys.F5,
		'A':  keys.Up,
		'Z':  keys.Tab,
	}
	for code, want := range direct {
		if got, ok := res.Table.Direct().Get(code); !ok || got != want {
			t.Fatalf("slot %d = %v (%v), want %v", code, got, ok, want)
		}
	}
	if n := res.Table.Direct().Len(); n != len(direct) {
		t.Fatalf("direct entries = %d, want %d", n, len(direct))
	}

	var recs []keytable.Record
	for _, r := range res.Table.Records().All() {
		recs = append(recs, r.Clone())
	}
	if len(recs) != 2 {
		t.Fatalf("records = %+v", recs)
	}
	if string(recs[0].Bytes) != "\x1b[2$" || recs[0].Key != keys.Insert {
		t.Fatalf("record 0 = %+v", recs[0])
	}
	if string(recs[1].Bytes) != "\x1b[1;5D" || recs[1].Key != keys.Left || recs[1].Mod != keys.ModAlt {
		t.Fatalf("record 1 = %+v", recs[1])
	}

	if len(res.Issues) != 1 || res.Issues[0].Capability != "kb2" || !errors.Is(res.Issues[0], keytable.ErrKeyCollision) {
		t.Fatalf("issues = %+v", res.Issues)
	}

	if len(res.ExtendedCaps) != 4 {
		t.Fatalf("extended = %+v", res.ExtendedCaps)
	}
	for _, c := range res.ExtendedCaps {
		if c.Name == "XM" && c.Mapped {
			t.Fatalf("XM is not a key capability")
		}
		if c.Name == "kUP5" && (!c.Mapped || !c.Outcome.Existing) {
			t.Fatalf("kUP5 should resolve to the existing up slot: %+v", c)
		}
	}

	if got := res.Names; len(got) != 2 || got[0] != "xterm-fixture" {
		t.Fatalf("names = %q", got)
	}
}

func TestLoadFatalCorruptString(t *testing.T) {
	t.Parallel()

	b := &terminfo.Builder{Names: "x"}
	b.ReserveStrings(60)
	b.SetString(55, "\x7f")
	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	data[len(data)-1] = 'x'

	if _, err := LoadBytes(quietCtx(), data, Options{}); !errors.Is(err, terminfo.ErrCorruptString) {
		t.Fatalf("err = %v, want ErrCorruptString", err)
	}
}

func TestLoadFatalHeader(t *testing.T) {
	t.Parallel()

	if _, err := LoadBytes(quietCtx(), []byte{1, 2, 3}, Options{}); !errors.Is(err, terminfo.ErrTruncated) {
		t.Fatalf("err = %v", err)
	}
	bad := make([]byte, 12)
	if _, err := LoadBytes(quietCtx(), bad, Options{}); !errors.Is(err, terminfo.ErrBadMagic) {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadLocalFailures(t *testing.T) {
	t.Parallel()

	b := &terminfo.Builder{Names: "x"}
	b.ReserveStrings(60)
	b.SetString(55, strings.Repeat("\x01", keytable.MaxSequenceLength+1))
	b.SetString(59, "\x1b[3~")
	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	res, err := LoadBytes(quietCtx(), data, Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var tooLong, outOfRange int
	for _, is := range res.Issues {
		switch {
		case errors.Is(is, keytable.ErrEntryTooLong):
			tooLong++
		case errors.Is(is, terminfo.ErrOrdinalRange):
			outOfRange++
		default:
			t.Fatalf("unexpected issue %v", is)
		}
	}
	// Every table ordinal from 61 on is past the 60 entry index.
	if tooLong != 1 || outOfRange != len(LegacyCapabilities)-2 {
		t.Fatalf("too long %d, out of range %d", tooLong, outOfRange)
	}
	if got, _ := res.Table.Direct().Get(2); got != keys.Delete {
		t.Fatalf("load did not continue after a local failure")
	}
}

func TestLoadFatalOutOfMemory(t *testing.T) {
	t.Parallel()

	b := &terminfo.Builder{Names: "x"}
	b.ReserveStrings(80)
	for _, ord := range []int{55, 59, 61} {
		b.SetString(ord, strings.Repeat(string(rune('a'+ord%26)), 120))
	}
	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	_, err = LoadBytes(quietCtx(), data, Options{ArenaLimit: 256})
	if !errors.Is(err, keytable.ErrOutOfMemory) {
		t.Fatalf("err = %v, want ErrOutOfMemory", err)
	}
}

func TestLoadFileAndDump(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "xterm-fixture")
	if err := os.WriteFile(path, xtermLike(t), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res, err := LoadFile(quietCtx(), path, Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteDump(&buf, res); err != nil {
		t.Fatalf("dump: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"PATH " + path,
		"  magic: 000432",
		"LEGACY STRINGS",
		`1: 55 kbs \x7f (length 1)`,
		"EXTENDED STRINGS",
		`2: kLFT3 \e[1;5D`,
		"INPUT STRING TABLE",
		`2: (key 145, mod 2) \e[1;5D`,
		"INPUT KEY TABLE",
		"65 142",
		"ISSUES",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump missing %q:\n%s", want, out)
		}
	}

	if _, err := LoadFile(quietCtx(), filepath.Join(t.TempDir(), "missing"), Options{}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file err = %v", err)
	}
}

func TestNewDocument(t *testing.T) {
	t.Parallel()

	res, err := LoadBytes(quietCtx(), xtermLike(t), Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	doc := NewDocument(res)
	if doc.Header.NumberWidth != 2 || doc.Extended == nil || doc.Extended.StringsCount != 4 {
		t.Fatalf("header = %+v extended = %+v", doc.Header, doc.Extended)
	}
	if len(doc.Direct) != res.Table.Direct().Len() || len(doc.Records) != 2 {
		t.Fatalf("tables: %d direct, %d records", len(doc.Direct), len(doc.Records))
	}
	if doc.Records[1].Sequence != `\e[1;5D` || doc.Records[1].ModName != "Alt" {
		t.Fatalf("record = %+v", doc.Records[1])
	}
	if len(doc.Issues) != 1 || doc.Issues[0].Capability != "kb2" {
		t.Fatalf("issues = %+v", doc.Issues)
	}
}

func TestExtendedTableModifiers(t *testing.T) {
	t.Parallel()

	cases := map[string]keys.Modifier{
		"kDC":   keys.ModShift,
		"kUP3":  keys.ModAlt,
		"kEND4": keys.ModAlt | keys.ModShift,
		"kLFT5": keys.ModCtrl,
		"kNXT6": keys.ModCtrl | keys.ModShift,
		"kRIT7": keys.ModCtrl | keys.ModAlt,
	}
	for name, want := range cases {
		c, ok := LookupExtended(name)
		if !ok || c.Mod != want {
			t.Fatalf("%s = %+v, %v", name, c, ok)
		}
	}
	if _, ok := LookupExtended("kUP8"); ok {
		t.Fatal("kUP8 is not mapped")
	}
}
