package escape

// Kind tells how a pattern's keycode is encoded.
type Kind uint8

const (
	// KindNumeric keycodes are 1-biased CSI parameters.
	KindNumeric Kind = iota
	// KindCharacter keycodes are the final byte itself.
	KindCharacter
)

// Entry is one member of the fixed pattern set.
type Entry struct {
	Name    string
	Kind    Kind
	Pattern Pattern
}

// Patterns is the fixed pattern set in priority order.
var Patterns = []Entry{
	{"csi-param-mod", KindNumeric, MustCompile("\x1b[%p;%p~", SlotKeycode, SlotModcode)},
	{"csi-param", KindNumeric, MustCompile("\x1b[%p~", SlotKeycode)},
	{"csi-mod-char", KindCharacter, MustCompile("\x1b[1;%p%c", SlotModcode, SlotKeycode)},
	{"ss3-mod-char", KindCharacter, MustCompile("\x1bO1;%p%c", SlotModcode, SlotKeycode)}, // gnome
	{"ss3-param-char", KindCharacter, MustCompile("\x1bO%p%c", SlotModcode, SlotKeycode)}, // konsole
	{"csi-char", KindCharacter, MustCompile("\x1b[%c", SlotKeycode)},
	{"ss3-char", KindCharacter, MustCompile("\x1bO%c", SlotKeycode)},
}

// Decoded is a sequence resolved by the pattern set.
type Decoded struct {
	// Keycode is the direct-table index. Numeric keycodes have had their ANSI
	// bias removed, so it may be -1.
	Keycode int
	// Modcode is the raw 1-biased modifier parameter, valid if HasModcode.
	Modcode    int
	HasModcode bool
	Kind       Kind
	// Pattern is the index into Patterns that matched.
	Pattern int
}

// Decode tries every pattern in priority order and returns the first match.
func Decode(seq []byte) (Decoded, bool) {
	for i, e := range Patterns {
		res, ok := e.Pattern.Match(seq)
		if !ok || !res.HasKeycode {
			continue
		}
		d := Decoded{
			Keycode:    int(res.Keycode),
			Modcode:    int(res.Modcode),
			HasModcode: res.HasModcode,
			Kind:       e.Kind,
			Pattern:    i,
		}
		if e.Kind == KindNumeric {
			d.Keycode--
		}
		return d, true
	}
	return Decoded{}, false
}
