package crosscheck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2/terminfo"
	// Registers every terminal tcell knows about.
	_ "github.com/gdamore/tcell/v2/terminfo/extended"

	"github.com/samcharles93/keyinfo/internal/rawbuf"
)

// Profile is the input side of tcell's compiled-in description of a
// terminal. tcell does not carry key strings, only the keypad and mouse
// setup.
type Profile struct {
	Name        string
	Aliases     []string
	EnterKeypad string
	ExitKeypad  string
	Mouse       string
	XTermLike   bool
}

// Tcell looks name up in tcell's database.
func Tcell(name string) (Profile, error) {
	ti, err := terminfo.LookupTerminfo(name)
	if err != nil {
		if errors.Is(err, terminfo.ErrTermNotFound) {
			return Profile{}, fmt.Errorf("%w: %s", ErrUnknownTerminal, name)
		}
		return Profile{}, err
	}
	return Profile{
		Name:        ti.Name,
		Aliases:     append([]string(nil), ti.Aliases...),
		EnterKeypad: ti.EnterKeypad,
		ExitKeypad:  ti.ExitKeypad,
		Mouse:       ti.Mouse,
		XTermLike:   ti.XTermLike,
	}, nil
}

func (p Profile) String() string {
	var b strings.Builder
	b.WriteString(p.Name)
	if len(p.Aliases) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(p.Aliases, ", "))
	}
	fmt.Fprintf(&b, " smkx=%s rmkx=%s kmous=%s",
		rawbuf.Armor([]byte(p.EnterKeypad)),
		rawbuf.Armor([]byte(p.ExitKeypad)),
		rawbuf.Armor([]byte(p.Mouse)))
	if p.XTermLike {
		b.WriteString(" xterm-like")
	}
	return b.String()
}
