package locate

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte{0x1a, 0x01}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestSearchDirsOrder(t *testing.T) {
	t.Parallel()

	r := &Resolver{
		Getenv: envOf(map[string]string{
			EnvTerminfo:     "/env/ti",
			EnvTerminfoDirs: "/dirs/a::/dirs/b",
		}),
		Home:   "/home/u",
		Dirs:   []string{"/cfg", "/dirs/a"},
		System: []string{"/sys1", "/sys2"},
	}
	want := []string{"/env/ti", "/home/u/.terminfo", "/dirs/a", "/sys1", "/sys2", "/dirs/b", "/cfg"}
	if got := r.SearchDirs(); !slices.Equal(got, want) {
		t.Fatalf("SearchDirs = %q\nwant %q", got, want)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	sys := t.TempDir()
	hashed := t.TempDir()
	touch(t, filepath.Join(sys, "x", "xterm"))
	touch(t, filepath.Join(home, ".terminfo", "x", "xterm"))
	touch(t, filepath.Join(hashed, "66", "foot"))

	r := &Resolver{Getenv: envOf(nil), Home: home, Dirs: []string{hashed}, System: []string{sys}}

	got, err := r.Resolve("xterm")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if want := filepath.Join(home, ".terminfo", "x", "xterm"); got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	got, err = r.Resolve("foot")
	if err != nil || got != filepath.Join(hashed, "66", "foot") {
		t.Fatalf("hashed layout: %q, %v", got, err)
	}

	if _, err := r.Resolve("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	for _, bad := range []string{"", "..", "a/b"} {
		if _, err := r.Resolve(bad); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("Resolve(%q) err = %v", bad, err)
		}
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	a, b := t.TempDir(), t.TempDir()
	touch(t, filepath.Join(a, "x", "xterm"))
	touch(t, filepath.Join(a, "x", "xterm-256color"))
	touch(t, filepath.Join(b, "x", "xterm"))
	touch(t, filepath.Join(b, "v", "vt100"))

	r := &Resolver{Getenv: envOf(nil), System: []string{a, b, filepath.Join(a, "missing")}}
	got, err := r.List("")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if want := []string{"vt100", "xterm", "xterm-256color"}; !slices.Equal(got, want) {
		t.Fatalf("List = %q", got)
	}

	got, _ = r.List("xterm-")
	if !slices.Equal(got, []string{"xterm-256color"}) {
		t.Fatalf("prefix list = %q", got)
	}
}
