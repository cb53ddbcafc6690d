// Package crosscheck compares a loaded terminfo entry with a reference
// entry, usually the same terminal compiled somewhere else on the search
// path.
package crosscheck

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/samcharles93/keyinfo/internal/loader"
	"github.com/samcharles93/keyinfo/internal/locate"
	"github.com/samcharles93/keyinfo/internal/rawbuf"
	"github.com/samcharles93/keyinfo/pkg/keys"
)

var (
	// ErrUnknownTerminal is returned when the reference has no entry.
	ErrUnknownTerminal = errors.New("terminal not in reference database")
	// ErrSameEntry is returned by Entries when the reference is the checked file.
	ErrSameEntry = errors.New("reference is the checked entry")
)

// Reference maps capability names to their raw strings for one terminal.
type Reference map[string]string

// Source produces the reference for a terminal name.
type Source func(name string) (Reference, error)

// FromResult collects the legacy key strings of a loaded entry.
func FromResult(res *loader.Result) Reference {
	ref := make(Reference, len(res.Legacy))
	for _, c := range res.Legacy {
		ref[c.Name] = string(c.Value)
	}
	return ref
}

// Entries returns a Source that resolves names through r and loads them
// with opts. When skip is non-empty and a name resolves to it, the source
// fails rather than compare an entry with itself.
func Entries(ctx context.Context, r *locate.Resolver, opts loader.Options, skip string) Source {
	return func(name string) (Reference, error) {
		path, err := r.Resolve(name)
		if err != nil {
			if errors.Is(err, locate.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownTerminal, name)
			}
			return nil, err
		}
		if skip != "" && filepath.Clean(path) == filepath.Clean(skip) {
			return nil, fmt.Errorf("%w: %s resolves to the entry being checked", ErrSameEntry, name)
		}
		res, err := loader.LoadFile(ctx, path, opts)
		if err != nil {
			return nil, err
		}
		return FromResult(res), nil
	}
}

type Status uint8

const (
	// StatusMatch: both sides carry the same string.
	StatusMatch Status = iota
	// StatusMismatch: both sides carry a string and they differ.
	StatusMismatch
	// StatusMissingLocal: only the reference has the capability.
	StatusMissingLocal
	// StatusMissingReference: only the loaded entry has it.
	StatusMissingReference
)

func (s Status) String() string {
	switch s {
	case StatusMatch:
		return "match"
	case StatusMismatch:
		return "mismatch"
	case StatusMissingLocal:
		return "missing-local"
	case StatusMissingReference:
		return "missing-reference"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

type Finding struct {
	Capability string
	Key        keys.KeyID
	Mod        keys.Modifier
	Status     Status
	Local      []byte
	Reference  []byte
	// Resolves reports whether the loaded table decodes the reference string
	// to the capability's key. It is only meaningful when Reference is set.
	Resolves bool
}

func (f Finding) String() string {
	s := fmt.Sprintf("%-6s %-17s local=%s ref=%s", f.Capability, f.Status, rawbuf.Armor(f.Local), rawbuf.Armor(f.Reference))
	if f.Reference != nil && !f.Resolves {
		s += " (unresolved)"
	}
	return s
}

type Report struct {
	Terminal string
	Findings []Finding
}

// Count returns how many findings have status s.
func (r Report) Count(s Status) int {
	n := 0
	for _, f := range r.Findings {
		if f.Status == s {
			n++
		}
	}
	return n
}

// Clean reports whether nothing differs from the reference and every
// reference string decodes to its key.
func (r Report) Clean() bool {
	for _, f := range r.Findings {
		if f.Status == StatusMismatch || f.Status == StatusMissingLocal {
			return false
		}
		if f.Reference != nil && !f.Resolves {
			return false
		}
	}
	return true
}

// Compare checks every legacy key capability that either side knows about,
// in capability table order.
func Compare(terminal string, res *loader.Result, ref Reference) Report {
	local := FromResult(res)

	rep := Report{Terminal: terminal}
	for _, lc := range loader.LegacyCapabilities {
		lv, haveLocal := local[lc.Name]
		rv, haveRef := ref[lc.Name]
		if !haveLocal && !haveRef {
			continue
		}
		f := Finding{Capability: lc.Name, Key: lc.Key, Mod: lc.Mod}
		if haveLocal {
			f.Local = []byte(lv)
		}
		if haveRef {
			f.Reference = []byte(rv)
			m, ok := res.Table.Lookup(f.Reference)
			f.Resolves = ok && m.Key == lc.Key
		}
		switch {
		case haveLocal && haveRef && lv == rv:
			f.Status = StatusMatch
		case haveLocal && haveRef:
			f.Status = StatusMismatch
		case haveRef:
			f.Status = StatusMissingLocal
		default:
			f.Status = StatusMissingReference
		}
		rep.Findings = append(rep.Findings, f)
	}
	return rep
}
