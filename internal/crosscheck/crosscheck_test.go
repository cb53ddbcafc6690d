package crosscheck

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/samcharles93/keyinfo/internal/loader"
	"github.com/samcharles93/keyinfo/internal/locate"
	"github.com/samcharles93/keyinfo/internal/logger"
	"github.com/samcharles93/keyinfo/pkg/terminfo"
)

func fixtureBytes(t *testing.T, kcud1 string) []byte {
	t.Helper()

	b := &terminfo.Builder{Names: "fixture"}
	b.ReserveStrings(100)
	b.SetString(55, "\x7f")   // kbs
	b.SetString(87, "\x1bOA") // kcuu1
	b.SetString(61, kcud1)    // kcud1
	b.SetString(76, "\x1bOH") // khome
	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return data
}

func testContext() context.Context {
	return logger.WithContext(context.Background(), logger.Discard())
}

func fixture(t *testing.T) *loader.Result {
	t.Helper()

	res, err := loader.LoadBytes(testContext(), fixtureBytes(t, "\x1bOB"), loader.Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return res
}

func TestCompare(t *testing.T) {
	t.Parallel()

	ref := Reference{
		"kbs":   "\x7f",
		"kcuu1": "\x1bOA",
		"kcud1": "\x1b[B",
		"kend":  "\x1bOF",
	}
	rep := Compare("fixture", fixture(t), ref)

	want := map[string]Status{
		"kbs":   StatusMatch,
		"kcuu1": StatusMatch,
		"kcud1": StatusMismatch,
		"khome": StatusMissingReference,
		"kend":  StatusMissingLocal,
	}
	if len(rep.Findings) != len(want) {
		t.Fatalf("findings = %v", rep.Findings)
	}
	for _, f := range rep.Findings {
		if f.Status != want[f.Capability] {
			t.Fatalf("%s: status %v, want %v", f.Capability, f.Status, want[f.Capability])
		}
		switch f.Capability {
		case "kcud1":
			// ESC [ B and ESC O B share the direct slot.
			if !f.Resolves {
				t.Fatalf("kcud1 reference should resolve: %v", f)
			}
		case "kend":
			if f.Resolves || f.Local != nil {
				t.Fatalf("kend has no local entry and cannot resolve: %v", f)
			}
		}
	}
	if rep.Count(StatusMatch) != 2 || rep.Clean() {
		t.Fatalf("report = %+v", rep)
	}

	clean := Compare("fixture", fixture(t), Reference{"kbs": "\x7f", "kcuu1": "\x1bOA"})
	if !clean.Clean() {
		t.Fatalf("expected clean report: %v", clean.Findings)
	}
}

func TestFromResult(t *testing.T) {
	t.Parallel()

	ref := FromResult(fixture(t))
	if len(ref) != 4 || ref["kcud1"] != "\x1bOB" || ref["kbs"] != "\x7f" {
		t.Fatalf("ref = %q", ref)
	}
	if !Compare("fixture", fixture(t), ref).Clean() {
		t.Fatal("an entry compared with itself should be clean")
	}
}

func TestEntries(t *testing.T) {
	t.Parallel()

	local, system := t.TempDir(), t.TempDir()
	write := func(dir, kcud1 string) string {
		path := filepath.Join(dir, "f", "fixture")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, fixtureBytes(t, kcud1), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		return path
	}
	localPath := write(local, "\x1bOB")
	write(system, "\x1b[B")

	src := Entries(testContext(), &locate.Resolver{System: []string{system}}, loader.Options{}, localPath)
	ref, err := src("fixture")
	if err != nil {
		t.Fatalf("reference: %v", err)
	}
	if ref["kcud1"] != "\x1b[B" {
		t.Fatalf("kcud1 = %q", ref["kcud1"])
	}

	if _, err := src("nosuch"); !errors.Is(err, ErrUnknownTerminal) {
		t.Fatalf("err = %v, want ErrUnknownTerminal", err)
	}

	self := Entries(testContext(), &locate.Resolver{System: []string{local}}, loader.Options{}, localPath)
	if _, err := self("fixture"); !errors.Is(err, ErrSameEntry) {
		t.Fatalf("err = %v, want ErrSameEntry", err)
	}
}

func TestTcellProfile(t *testing.T) {
	t.Parallel()

	p, err := Tcell("xterm")
	if err != nil {
		t.Fatalf("lookup xterm: %v", err)
	}
	if p.Name != "xterm" || !p.XTermLike {
		t.Fatalf("profile = %+v", p)
	}
	if p.EnterKeypad != "\x1b[?1h\x1b=" || p.ExitKeypad != "\x1b[?1l\x1b>" {
		t.Fatalf("keypad = %q / %q", p.EnterKeypad, p.ExitKeypad)
	}
	if got := p.String(); got != `xterm (xterm-debian) smkx=\e[?1h\e= rmkx=\e[?1l\e> kmous=\e[< xterm-like` {
		t.Fatalf("String() = %q", got)
	}

	if _, err := Tcell("no-such-terminal-keyinfo"); !errors.Is(err, ErrUnknownTerminal) {
		t.Fatalf("err = %v, want ErrUnknownTerminal", err)
	}
}
