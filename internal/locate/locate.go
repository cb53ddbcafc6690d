// Package locate finds compiled terminfo entries on disk the way ncurses
// does.
package locate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	EnvTerminfo     = "TERMINFO"
	EnvTerminfoDirs = "TERMINFO_DIRS"
)

// SystemDirs are searched last, and wherever TERMINFO_DIRS has an empty
// element.
var SystemDirs = []string{"/etc/terminfo", "/lib/terminfo", "/usr/share/terminfo"}

var (
	ErrNotFound    = errors.New("terminfo entry not found")
	ErrInvalidName = errors.New("invalid terminal name")
)

// Resolver searches, in order: $TERMINFO, ~/.terminfo, $TERMINFO_DIRS, the
// configured directories, then the system directories.
type Resolver struct {
	Getenv func(string) string
	Home   string
	Dirs   []string
	System []string
}

// New returns a Resolver over the process environment.
func New(configured []string) *Resolver {
	home, _ := os.UserHomeDir()
	return &Resolver{
		Getenv: os.Getenv,
		Home:   home,
		Dirs:   configured,
		System: SystemDirs,
	}
}

func (r *Resolver) getenv(key string) string {
	if r.Getenv == nil {
		return ""
	}
	return strings.TrimSpace(r.Getenv(key))
}

// SearchDirs lists the directories to search, without duplicates.
func (r *Resolver) SearchDirs() []string {
	var dirs []string
	seen := make(map[string]bool)
	add := func(ds ...string) {
		for _, d := range ds {
			d = strings.TrimSpace(d)
			if d == "" {
				continue
			}
			d = filepath.Clean(d)
			if seen[d] {
				continue
			}
			seen[d] = true
			dirs = append(dirs, d)
		}
	}

	add(r.getenv(EnvTerminfo))
	if r.Home != "" {
		add(filepath.Join(r.Home, ".terminfo"))
	}
	if v := r.getenv(EnvTerminfoDirs); v != "" {
		for _, d := range strings.Split(v, string(os.PathListSeparator)) {
			if d == "" {
				add(r.System...)
				continue
			}
			add(d)
		}
	}
	add(r.Dirs...)
	add(r.System...)
	return dirs
}

// Candidates returns the paths an entry may have inside dir: the usual
// first-letter directory and the hashed one used on case-insensitive
// filesystems.
func Candidates(dir, name string) []string {
	first := name[:1]
	return []string{
		filepath.Join(dir, first, name),
		filepath.Join(dir, fmt.Sprintf("%02x", name[0]), name),
	}
}

// ValidName reports whether name can be a terminfo entry name.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}

// Resolve returns the path of the first entry named name.
func (r *Resolver) Resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	if !ValidName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, dir := range r.SearchDirs() {
		for _, cand := range Candidates(dir, name) {
			if st, err := os.Stat(cand); err == nil && st.Mode().IsRegular() {
				return cand, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// List returns every entry name reachable through the search path, sorted,
// with entries shadowed by an earlier directory reported once.
func (r *Resolver) List(prefix string) ([]string, error) {
	seen := make(map[string]bool)
	for _, dir := range r.SearchDirs() {
		subs, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		for _, sub := range subs {
			if !sub.IsDir() {
				continue
			}
			ents, err := os.ReadDir(filepath.Join(dir, sub.Name()))
			if err != nil {
				return nil, err
			}
			for _, e := range ents {
				name := e.Name()
				if e.IsDir() || !strings.HasPrefix(name, prefix) {
					continue
				}
				seen[name] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}
