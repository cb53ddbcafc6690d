// Package rawbuf provides bounds-checked helpers over raw byte buffers.
//
// Every accessor takes the whole buffer plus a position and reports failure
// instead of panicking, so callers can walk offsets computed from untrusted
// file headers without checking every access by hand.
package rawbuf

import "encoding/binary"

// Align rounds v up to the next multiple of boundary.
func Align(v, boundary int) int {
	if boundary <= 1 {
		return v
	}
	return ((v + boundary - 1) / boundary) * boundary
}

// ReadI16LE reads one little-endian int16 at pos.
func ReadI16LE(data []byte, pos int) (int16, bool) {
	if pos < 0 || pos+2 > len(data) || pos+2 < pos {
		return 0, false
	}
	return int16(binary.LittleEndian.Uint16(data[pos:])), true
}

// ReadI16sLE fills out with consecutive little-endian int16 values starting at
// pos. It returns the number of bytes the read requires, and false when the
// buffer is too short; out is left untouched in that case.
func ReadI16sLE(data []byte, pos int, out []int16) (int, bool) {
	need := 2 * len(out)
	if pos < 0 || pos+need > len(data) || pos+need < pos {
		return need, false
	}
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(data[pos+2*i:]))
	}
	return need, true
}

// SkipString returns the number of bytes from pos up to and including the next
// NUL. It returns 0 when pos is out of range or no terminator exists before the
// end of data.
func SkipString(data []byte, pos int) int {
	if pos < 0 || pos >= len(data) {
		return 0
	}
	for i := pos; i < len(data); i++ {
		if data[i] == 0 {
			return i - pos + 1
		}
	}
	return 0
}

// CString returns the NUL-terminated string at pos without its terminator.
// The returned slice aliases data.
func CString(data []byte, pos int) ([]byte, bool) {
	n := SkipString(data, pos)
	if n == 0 {
		return nil, false
	}
	return data[pos : pos+n-1], true
}

// HasPrefix reports whether data[pos:] starts with prefix.
func HasPrefix(data []byte, pos int, prefix []byte) bool {
	if pos < 0 || pos+len(prefix) > len(data) {
		return false
	}
	for i, b := range prefix {
		if data[pos+i] != b {
			return false
		}
	}
	return true
}

// UTF8Stride returns the encoded length implied by a UTF-8 lead byte, or 0 for
// a continuation or invalid byte.
func UTF8Stride(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	default:
		return 0
	}
}
