// Package keys defines the logical key identifiers and modifier bits that
// terminal input sequences resolve to.
package keys

import (
	"fmt"
	"strings"
)

// KeyID identifies a logical key. ASCII code points 0..127 identify
// themselves; values from 128 up name keys that have no single-byte form.
type KeyID uint8

const (
	Tab       KeyID = 9
	Enter     KeyID = 10
	Escape    KeyID = 27
	Backspace KeyID = 127

	// UTF8 marks input that is not a single logical key but raw UTF-8 text.
	UTF8 KeyID = 128

	F1  KeyID = 129
	F2  KeyID = 130
	F3  KeyID = 131
	F4  KeyID = 132
	F5  KeyID = 133
	F6  KeyID = 134
	F7  KeyID = 135
	F8  KeyID = 136
	F9  KeyID = 137
	F10 KeyID = 138
	F11 KeyID = 139
	F12 KeyID = 140

	Up       KeyID = 142
	Down     KeyID = 143
	Right    KeyID = 144
	Left     KeyID = 145
	Home     KeyID = 146
	Insert   KeyID = 147
	Delete   KeyID = 148
	End      KeyID = 149
	PageUp   KeyID = 150
	PageDown KeyID = 151
	Center   KeyID = 152

	Unknown KeyID = 255
)

// IsASCII reports whether k is a plain ASCII key.
func (k KeyID) IsASCII() bool {
	return k < 128
}

var keyToName = map[KeyID]string{
	Tab:       "tab",
	Enter:     "enter",
	Escape:    "escape",
	Backspace: "backspace",
	UTF8:      "utf8",

	F1:  "f1",
	F2:  "f2",
	F3:  "f3",
	F4:  "f4",
	F5:  "f5",
	F6:  "f6",
	F7:  "f7",
	F8:  "f8",
	F9:  "f9",
	F10: "f10",
	F11: "f11",
	F12: "f12",

	Up:       "up",
	Down:     "down",
	Right:    "right",
	Left:     "left",
	Home:     "home",
	Insert:   "insert",
	Delete:   "delete",
	End:      "end",
	PageUp:   "page_up",
	PageDown: "page_down",
	Center:   "center",

	Unknown: "unknown",
}

// nameToKey is the reverse lookup, built from keyToName
var nameToKey map[string]KeyID

func init() {
	nameToKey = make(map[string]KeyID, len(keyToName))
	for k, v := range keyToName {
		nameToKey[v] = k
	}
	nameToKey["esc"] = Escape
	nameToKey["return"] = Enter
	nameToKey["pgup"] = PageUp
	nameToKey["pgdn"] = PageDown
}

// Name returns the canonical name of k. Printable ASCII keys are named by
// their character, other unnamed codes by their number.
func (k KeyID) Name() string {
	if name, ok := keyToName[k]; ok {
		return name
	}
	if k.IsASCII() {
		switch {
		case k < 0x20:
			return "ctrl_" + strings.ToLower(string(rune(k+'@')))
		case k > 0x20:
			return string(rune(k))
		}
	}
	return fmt.Sprintf("key_%d", uint8(k))
}

func (k KeyID) String() string {
	return k.Name()
}

// ByName resolves a canonical name (or a single printable character) to a
// KeyID.
func ByName(name string) (KeyID, bool) {
	if k, ok := nameToKey[strings.ToLower(name)]; ok {
		return k, true
	}
	if len(name) == 1 && name[0] >= 0x21 && name[0] <= 0x7e {
		return KeyID(name[0]), true
	}
	return 0, false
}
