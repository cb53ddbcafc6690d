package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/samcharles93/keyinfo/internal/locate"
)

func TestTerminalName(t *testing.T) {
	t.Run("argument wins", func(t *testing.T) {
		t.Setenv(envTerm, "xterm")
		got, err := terminalName("  vt100 ")
		if err != nil || got != "vt100" {
			t.Fatalf("terminalName = %q, %v", got, err)
		}
	})

	t.Run("falls back to TERM", func(t *testing.T) {
		t.Setenv(envTerm, "xterm-256color")
		got, err := terminalName("")
		if err != nil || got != "xterm-256color" {
			t.Fatalf("terminalName = %q, %v", got, err)
		}
	})

	t.Run("errors without TERM", func(t *testing.T) {
		t.Setenv(envTerm, "")
		if _, err := terminalName(""); !errors.Is(err, errNoTerminal) {
			t.Fatalf("expected errNoTerminal, got %v", err)
		}
	})
}

func TestResolveEntry(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "x", "xfix")
	if err := os.MkdirAll(filepath.Dir(entry), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(entry, []byte("stub"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	r := &locate.Resolver{Getenv: func(string) string { return "" }, System: []string{dir}}

	t.Run("file flag skips lookup", func(t *testing.T) {
		got, err := resolveEntry("ignored", "./some/../entry", r)
		if err != nil {
			t.Fatalf("resolveEntry: %v", err)
		}
		if got != "entry" {
			t.Fatalf("got %q want %q", got, "entry")
		}
	})

	t.Run("name resolves through search path", func(t *testing.T) {
		got, err := resolveEntry("xfix", "", r)
		if err != nil {
			t.Fatalf("resolveEntry: %v", err)
		}
		if got != entry {
			t.Fatalf("got %q want %q", got, entry)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		if _, err := resolveEntry("nosuch", "", r); !errors.Is(err, locate.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
