// Package terminfo reads compiled terminfo entries in the legacy and extended
// binary formats.
package terminfo

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/samcharles93/keyinfo/internal/rawbuf"
)

type File struct {
	Data   []byte
	Header LegacyHeader
	Layout Layout

	// Extended is nil when the file has no extended section.
	Extended       *ExtendedHeader
	ExtendedLayout ExtendedLayout

	mmapped bool
}

// Open maps a terminfo file read-only and parses its headers.
// If mmap is unavailable, it falls back to ReadAt-based loading.
// The returned file must be closed to release any mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size64 := stat.Size()
	if size64 < LegacyHeaderSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTruncated, path, size64)
	}
	if size64 > int64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("%w: %s too large", ErrCorruptHeader, path)
	}
	size := int(size64)

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		tf, parseErr := parse(data, true)
		if parseErr != nil {
			_ = unix.Munmap(data)
			return nil, parseErr
		}
		return tf, nil
	}

	data, err = readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return parse(data, false)
}

// Parse parses a terminfo file held in memory. data is not copied.
func Parse(data []byte) (*File, error) {
	return parse(data, false)
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

func parse(data []byte, mmapped bool) (*File, error) {
	hdr, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	tf := &File{
		Data:    data,
		Header:  hdr,
		Layout:  ComputeLayout(hdr),
		mmapped: mmapped,
	}

	if tf.Layout.Extended >= len(data) {
		return tf, nil
	}
	ext, err := ParseExtendedHeader(data, tf.Layout.Extended)
	if err != nil {
		return nil, err
	}
	tf.Extended = &ext
	tf.ExtendedLayout = ComputeExtendedLayout(tf.Layout.Extended, ext, tf.Layout.NumberWidth)
	return tf, nil
}

// Close releases any mmap backing. Slices returned by the accessors must not
// be used afterwards.
func (f *File) Close() error {
	if f == nil || f.Data == nil {
		return nil
	}
	var err error
	if f.mmapped {
		err = unix.Munmap(f.Data)
	}
	f.Data = nil
	f.Extended = nil
	f.mmapped = false
	return err
}

// Names returns the entry's names: the primary name, its aliases, and usually
// a trailing description.
func (f *File) Names() []string {
	end := min(f.Layout.Names+int(f.Header.NamesSize), len(f.Data))
	if end <= f.Layout.Names {
		return nil
	}
	raw := f.Data[f.Layout.Names:end]
	if i := strings.IndexByte(string(raw), 0); i >= 0 {
		raw = raw[:i]
	}
	if len(raw) == 0 {
		return nil
	}
	return strings.Split(string(raw), "|")
}

// LegacyString returns the string capability at ordinal. The slice aliases
// the file data.
func (f *File) LegacyString(ordinal int) ([]byte, error) {
	if ordinal < 0 || ordinal >= int(f.Header.StringTableEntries) {
		return nil, fmt.Errorf("%w: %d of %d", ErrOrdinalRange, ordinal, f.Header.StringTableEntries)
	}
	offset, ok := rawbuf.ReadI16LE(f.Data, f.Layout.IndexTable+2*ordinal)
	if !ok {
		return nil, fmt.Errorf("%w: index entry %d lies outside the file", ErrOrdinalRange, ordinal)
	}
	if offset < 0 {
		return nil, ErrAbsent
	}
	if offset >= f.Header.StringTableSize {
		return nil, fmt.Errorf("%w: %d of %d", ErrOffsetRange, offset, f.Header.StringTableSize)
	}
	s, ok := rawbuf.CString(f.Data, f.Layout.StringData+int(offset))
	if !ok {
		return nil, fmt.Errorf("%w: ordinal %d at %#x", ErrCorruptString, ordinal, f.Layout.StringData+int(offset))
	}
	return s, nil
}

// ExtendedStrings returns the extended string values in file order. It
// returns nil when there is no extended section.
func (f *File) ExtendedStrings() ([][]byte, error) {
	if f.Extended == nil {
		return nil, nil
	}
	out := make([][]byte, 0, f.Extended.StringsCount)
	pos := f.ExtendedLayout.StringData
	for i := range int(f.Extended.StringsCount) {
		s, ok := rawbuf.CString(f.Data, pos)
		if !ok {
			return nil, fmt.Errorf("%w: extended string %d of %d at %#x", ErrCorruptString, i, f.Extended.StringsCount, pos)
		}
		out = append(out, s)
		pos += len(s) + 1
	}
	return out, nil
}

// ExtendedNames returns up to StringsCount names of extended string
// capabilities. Name data sits after every extended value, one name per
// boolean, number and string in that order, so the string names start after
// skipping strings+booleans+numbers entries. truncated reports that the data
// ran out first.
func (f *File) ExtendedNames() (names []string, truncated bool) {
	if f.Extended == nil {
		return nil, false
	}
	ext := f.Extended
	pos := f.ExtendedLayout.StringData
	skip := int(ext.StringsCount) + int(ext.BooleansCount) + int(ext.NumbersCount)
	for range skip {
		n := rawbuf.SkipString(f.Data, pos)
		if n == 0 {
			return nil, true
		}
		pos += n
	}

	names = make([]string, 0, ext.StringsCount)
	for range int(ext.StringsCount) {
		s, ok := rawbuf.CString(f.Data, pos)
		if !ok {
			return names, true
		}
		names = append(names, string(s))
		pos += len(s) + 1
	}
	return names, false
}

// Capability is a named extended string capability.
type Capability struct {
	Name  string
	Value []byte
}

// ExtendedCapabilities pairs extended strings with their names. Strings past
// the last resolvable name are dropped and reported through truncated.
func (f *File) ExtendedCapabilities() (caps []Capability, truncated bool, err error) {
	values, err := f.ExtendedStrings()
	if err != nil {
		return nil, false, err
	}
	names, truncated := f.ExtendedNames()
	n := min(len(values), len(names))
	caps = make([]Capability, n)
	for i := range n {
		caps[i] = Capability{Name: names[i], Value: values[i]}
	}
	return caps, truncated, nil
}
