package rawbuf

import (
	"fmt"
	"strings"
)

const hexDigits = "0123456789abcdef"

// AppendArmor appends a printable rendering of b to dst. Graphic ASCII other
// than space and backslash is copied verbatim. Backslash doubles, common
// control bytes use their C escapes (ESC is \e), and everything else becomes
// \xHH.
func AppendArmor(dst []byte, b byte) []byte {
	if b == '\\' {
		return append(dst, '\\', '\\')
	}
	if b >= 0x21 && b <= 0x7e {
		return append(dst, b)
	}
	switch b {
	case '\a':
		return append(dst, '\\', 'a')
	case '\b':
		return append(dst, '\\', 'b')
	case '\t':
		return append(dst, '\\', 't')
	case '\n':
		return append(dst, '\\', 'n')
	case '\v':
		return append(dst, '\\', 'v')
	case '\f':
		return append(dst, '\\', 'f')
	case '\r':
		return append(dst, '\\', 'r')
	case 0x1b:
		return append(dst, '\\', 'e')
	}
	return append(dst, '\\', 'x', hexDigits[b>>4], hexDigits[b&0x0f])
}

// Armor renders s with AppendArmor.
func Armor(s []byte) string {
	buf := make([]byte, 0, len(s)*2)
	for _, b := range s {
		buf = AppendArmor(buf, b)
	}
	return string(buf)
}

// Unarmor reverses Armor. It also accepts \E for ESC.
func Unarmor(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		if i+1 >= len(s) {
			return nil, fmt.Errorf("dangling escape at offset %d", i)
		}
		i++
		switch s[i] {
		case 'a':
			out = append(out, '\a')
		case 'b':
			out = append(out, '\b')
		case 't':
			out = append(out, '\t')
		case 'n':
			out = append(out, '\n')
		case 'v':
			out = append(out, '\v')
		case 'f':
			out = append(out, '\f')
		case 'r':
			out = append(out, '\r')
		case 'e', 'E':
			out = append(out, 0x1b)
		case '\\':
			out = append(out, '\\')
		case 'x':
			if i+2 >= len(s) {
				return nil, fmt.Errorf("short \\x escape at offset %d", i-1)
			}
			hi := strings.IndexByte(hexDigits, lower(s[i+1]))
			lo := strings.IndexByte(hexDigits, lower(s[i+2]))
			if hi < 0 || lo < 0 {
				return nil, fmt.Errorf("bad \\x escape %q", s[i-1:i+3])
			}
			out = append(out, byte(hi<<4|lo))
			i += 2
		default:
			return nil, fmt.Errorf("unknown escape \\%c", s[i])
		}
	}
	return out, nil
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
