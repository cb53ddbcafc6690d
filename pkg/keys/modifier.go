package keys

import "strings"

// Modifier is a bitmask over the keyboard modifiers. The bit layout matches
// the xterm modifier parameter minus one, so a CSI modcode m decodes to
// Modifier(m-1).
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 0x01

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt Modifier = 0x02

	// ModCtrl indicates the Control key.
	ModCtrl Modifier = 0x04

	// ModMeta indicates the Meta key.
	ModMeta Modifier = 0x08
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// FromModcode converts a 1-biased ANSI modifier parameter to a Modifier.
func FromModcode(modcode uint8) (Modifier, bool) {
	if modcode == 0 {
		return ModNone, false
	}
	return Modifier(modcode - 1), true
}

// String returns a human-readable form like "Ctrl+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}
