// Package escape matches terminal escape sequences against a small closed
// grammar of ANSI parameterized forms.
//
// A pattern is written as text where "%c" captures exactly one byte, "%p"
// captures one or more ASCII digits as a value in 0..255 and "%%" is a literal
// percent sign. Every other byte matches itself.
package escape

import "fmt"

// TokenKind enumerates the pattern grammar.
type TokenKind uint8

const (
	TokenLiteral TokenKind = iota
	TokenChar
	TokenParam
)

// Slot names the output a capture token binds to.
type Slot uint8

const (
	SlotKeycode Slot = iota
	SlotModcode
)

// Token is one element of a compiled pattern.
type Token struct {
	Kind TokenKind
	Byte byte // literal byte for TokenLiteral
	Slot Slot // output for TokenChar and TokenParam
}

// Pattern is a compiled escape pattern.
type Pattern struct {
	source string
	tokens []Token
}

func (p Pattern) String() string {
	return p.source
}

// Compile parses source. Capture tokens are bound to slots in the order they
// appear.
func Compile(source string, slots ...Slot) (Pattern, error) {
	p := Pattern{source: source}
	next := 0
	for i := 0; i < len(source); i++ {
		c := source[i]
		if c != '%' {
			p.tokens = append(p.tokens, Token{Kind: TokenLiteral, Byte: c})
			continue
		}
		if i+1 >= len(source) {
			return Pattern{}, fmt.Errorf("pattern %q: trailing %%", source)
		}
		i++
		switch source[i] {
		case '%':
			p.tokens = append(p.tokens, Token{Kind: TokenLiteral, Byte: '%'})
		case 'c', 'p':
			if next >= len(slots) {
				return Pattern{}, fmt.Errorf("pattern %q: capture %d has no slot", source, next)
			}
			kind := TokenChar
			if source[i] == 'p' {
				kind = TokenParam
			}
			p.tokens = append(p.tokens, Token{Kind: kind, Slot: slots[next]})
			next++
		default:
			return Pattern{}, fmt.Errorf("pattern %q: unknown directive %%%c", source, source[i])
		}
	}
	if next != len(slots) {
		return Pattern{}, fmt.Errorf("pattern %q: %d slots for %d captures", source, len(slots), next)
	}
	return p, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(source string, slots ...Slot) Pattern {
	p, err := Compile(source, slots...)
	if err != nil {
		panic(err)
	}
	return p
}

// Result holds the values bound by a successful match.
type Result struct {
	Keycode    uint8
	Modcode    uint8
	HasKeycode bool
	HasModcode bool
}

func (r *Result) bind(slot Slot, v uint8) {
	switch slot {
	case SlotKeycode:
		r.Keycode, r.HasKeycode = v, true
	case SlotModcode:
		r.Modcode, r.HasModcode = v, true
	}
}

// Match reports whether all of seq matches p. Partial matches fail. The
// returned Result is only meaningful when ok is true.
func (p Pattern) Match(seq []byte) (res Result, ok bool) {
	s := 0
	for _, tok := range p.tokens {
		if s >= len(seq) {
			return Result{}, false
		}
		switch tok.Kind {
		case TokenLiteral:
			if seq[s] != tok.Byte {
				return Result{}, false
			}
			s++
		case TokenChar:
			res.bind(tok.Slot, seq[s])
			s++
		case TokenParam:
			if !isDigit(seq[s]) {
				return Result{}, false
			}
			v := 0
			for s < len(seq) && isDigit(seq[s]) {
				v = v*10 + int(seq[s]-'0')
				if v > 255 {
					return Result{}, false
				}
				s++
			}
			res.bind(tok.Slot, uint8(v))
		}
	}
	if s != len(seq) {
		return Result{}, false
	}
	return res, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
