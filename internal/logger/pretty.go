package logger

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/samcharles93/keyinfo/internal/rawbuf"
)

const (
	ansiReset  = "\033[0m"
	ansiDim    = "\033[2m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiBlue   = "\033[34m"
	ansiCyan   = "\033[36m"
)

// ConsoleHandler is a slog.Handler writing one short line per record:
//
//	15:04:05 INF loaded entry terminal=xterm records=2
//
// Groups flatten into dotted keys. Byte slices, and strings holding control
// bytes, are armored so raw key sequences never reach the terminal. Colors
// are only used when the writer is a terminal.
type ConsoleHandler struct {
	w     io.Writer
	mu    *sync.Mutex
	level slog.Leveler
	color bool

	prefix string // open groups, each followed by a dot
	pre    []byte // WithAttrs output, already formatted
}

// NewConsoleHandler returns a handler writing to w. A nil level means info.
func NewConsoleHandler(w io.Writer, level slog.Leveler) *ConsoleHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &ConsoleHandler{w: w, mu: &sync.Mutex{}, level: level, color: IsTerminal(w)}
}

func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 256)
	if !r.Time.IsZero() {
		buf = h.paint(buf, ansiDim, r.Time.Format(time.TimeOnly))
		buf = append(buf, ' ')
	}
	tag, color := levelStyle(r.Level)
	buf = h.paint(buf, color, tag)
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)
	buf = append(buf, h.pre...)
	r.Attrs(func(a slog.Attr) bool {
		buf = h.appendAttr(buf, h.prefix, a)
		return true
	})
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf)
	return err
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.pre = slices.Clip(h.pre)
	for _, a := range attrs {
		h2.pre = h2.appendAttr(h2.pre, h.prefix, a)
	}
	return &h2
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

func (h *ConsoleHandler) paint(buf []byte, color, s string) []byte {
	if !h.color {
		return append(buf, s...)
	}
	buf = append(buf, color...)
	buf = append(buf, s...)
	return append(buf, ansiReset...)
}

// appendAttr writes " key=value". Empty attributes are dropped and group
// values are expanded under their key.
func (h *ConsoleHandler) appendAttr(buf []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			buf = h.appendAttr(buf, prefix, ga)
		}
		return buf
	}

	color := ansiCyan
	if a.Key == "error" || a.Key == "err" {
		color = ansiRed
	}
	buf = append(buf, ' ')
	buf = h.paint(buf, color, prefix+a.Key+"=")
	return appendValue(buf, a.Value)
}

func appendValue(buf []byte, v slog.Value) []byte {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		switch {
		case hasControl(s):
			return append(buf, rawbuf.Armor([]byte(s))...)
		case needsQuoting(s):
			return strconv.AppendQuote(buf, s)
		default:
			return append(buf, s...)
		}
	case slog.KindTime:
		return v.Time().AppendFormat(buf, time.RFC3339)
	case slog.KindAny:
		if b, ok := v.Any().([]byte); ok {
			for _, c := range b {
				buf = rawbuf.AppendArmor(buf, c)
			}
			return buf
		}
	}
	return append(buf, v.String()...)
}

func levelStyle(level slog.Level) (tag, color string) {
	switch {
	case level >= slog.LevelError:
		return "ERR", ansiRed
	case level >= slog.LevelWarn:
		return "WRN", ansiYellow
	case level >= slog.LevelInfo:
		return "INF", ansiBlue
	default:
		return "DBG", ansiDim
	}
}

func hasControl(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] == 0x7f {
			return true
		}
	}
	return false
}

func needsQuoting(s string) bool {
	for _, c := range s {
		if c == ' ' || c == '\t' || c == '\n' || c == '"' {
			return true
		}
	}
	return false
}
