// Package loader walks a compiled terminfo entry and feeds every known key
// capability into a keytable.Table.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/samcharles93/keyinfo/internal/logger"
	"github.com/samcharles93/keyinfo/pkg/keys"
	"github.com/samcharles93/keyinfo/pkg/keytable"
	"github.com/samcharles93/keyinfo/pkg/terminfo"
)

type Source uint8

const (
	SourceLegacy Source = iota
	SourceExtended
)

func (s Source) String() string {
	if s == SourceExtended {
		return "extended"
	}
	return "legacy"
}

// Capability is one string capability the loader looked at. Value is a copy
// and outlives the terminfo file.
type Capability struct {
	Source Source
	// Ordinal is the string-table ordinal for legacy capabilities and the
	// position in file order for extended ones.
	Ordinal int
	Name    string
	Value   []byte
	// Mapped is set when the capability names a key and was classified.
	Mapped  bool
	Key     keys.KeyID
	Mod     keys.Modifier
	Outcome keytable.Outcome
}

// Issue is a capability that was skipped.
type Issue struct {
	Source     Source
	Ordinal    int
	Capability string
	Err        error
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s %s (%d): %v", i.Source, i.Capability, i.Ordinal, i.Err)
}

func (i Issue) Unwrap() error { return i.Err }

type Result struct {
	Path   string
	Names  []string
	Header terminfo.LegacyHeader
	Layout terminfo.Layout

	Extended       *terminfo.ExtendedHeader
	ExtendedLayout terminfo.ExtendedLayout
	// NamesTruncated is set when extended names ran out before every
	// extended string had one.
	NamesTruncated bool

	Legacy       []Capability
	ExtendedCaps []Capability

	Table  *keytable.Table
	Issues []Issue
}

type Options struct {
	// ArenaLimit caps the record store; zero uses the keytable default.
	ArenaLimit int
	// Legacy replaces LegacyCapabilities when non-nil.
	Legacy []LegacyCapability
}

// LoadFile opens path and loads it.
func LoadFile(ctx context.Context, path string, opts Options) (*Result, error) {
	f, err := terminfo.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	res, err := Load(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	res.Path = path
	return res, nil
}

// LoadBytes parses and loads an entry held in memory.
func LoadBytes(ctx context.Context, data []byte, opts Options) (*Result, error) {
	f, err := terminfo.Parse(data)
	if err != nil {
		return nil, err
	}
	return Load(ctx, f, opts)
}

// Load classifies every legacy and extended key capability of f.
//
// Unterminated strings and record store exhaustion abort the load. Range
// errors, collisions and oversized sequences only skip the capability and
// are listed in Result.Issues. Absent capabilities are skipped silently.
func Load(ctx context.Context, f *terminfo.File, opts Options) (*Result, error) {
	log := logger.FromContext(ctx).With("component", "loader")

	res := &Result{
		Names:  f.Names(),
		Header: f.Header,
		Layout: f.Layout,
		Table:  keytable.New(keytable.WithArenaLimit(opts.ArenaLimit)),
	}
	log.Debug("legacy header",
		"magic", fmt.Sprintf("%#o", uint16(f.Header.Magic)),
		"strings", f.Header.StringTableEntries,
		"string_table_offset", f.Layout.StringData,
	)

	legacy := opts.Legacy
	if legacy == nil {
		legacy = LegacyCapabilities
	}
	for _, lc := range legacy {
		value, err := f.LegacyString(lc.Ordinal)
		switch {
		case errors.Is(err, terminfo.ErrAbsent):
			continue
		case errors.Is(err, terminfo.ErrCorruptString):
			return nil, err
		case err != nil:
			res.addIssue(log, Issue{Source: SourceLegacy, Ordinal: lc.Ordinal, Capability: lc.Name, Err: err})
			continue
		}

		c := Capability{
			Source:  SourceLegacy,
			Ordinal: lc.Ordinal,
			Name:    lc.Name,
			Value:   bytes.Clone(value),
			Key:     lc.Key,
			Mod:     lc.Mod,
		}
		if err := res.classify(log, &c); err != nil {
			return nil, err
		}
		res.Legacy = append(res.Legacy, c)
	}

	if f.Extended == nil {
		log.Debug("no extended section", "legacy_end", f.Layout.End)
		return res, nil
	}
	res.Extended = f.Extended
	res.ExtendedLayout = f.ExtendedLayout

	caps, truncated, err := f.ExtendedCapabilities()
	if err != nil {
		return nil, err
	}
	res.NamesTruncated = truncated
	if truncated {
		log.Warn("extended names truncated",
			"strings", f.Extended.StringsCount,
			"names", len(caps),
		)
	}

	for i, ec := range caps {
		c := Capability{
			Source:  SourceExtended,
			Ordinal: i,
			Name:    ec.Name,
			Value:   bytes.Clone(ec.Value),
		}
		if nc, ok := LookupExtended(ec.Name); ok {
			c.Key, c.Mod = nc.Key, nc.Mod
			if err := res.classify(log, &c); err != nil {
				return nil, err
			}
		}
		res.ExtendedCaps = append(res.ExtendedCaps, c)
	}

	log.Debug("loaded",
		"direct", res.Table.Direct().Len(),
		"records", res.Table.Records().Count(),
		"issues", len(res.Issues),
	)
	return res, nil
}

// classify stores c in the table. Only a fatal error is returned; local
// failures become issues.
func (r *Result) classify(log logger.Logger, c *Capability) error {
	out, err := r.Table.Classify(c.Value, c.Key, c.Mod)
	switch {
	case err == nil:
		c.Mapped = true
		c.Outcome = out
		return nil
	case errors.Is(err, keytable.ErrOutOfMemory):
		return fmt.Errorf("%s %s: %w", c.Source, c.Name, err)
	default:
		r.addIssue(log, Issue{Source: c.Source, Ordinal: c.Ordinal, Capability: c.Name, Err: err})
		return nil
	}
}

func (r *Result) addIssue(log logger.Logger, is Issue) {
	log.Warn("skipping capability",
		"source", is.Source.String(),
		"ordinal", is.Ordinal,
		"capability", is.Capability,
		"error", is.Err,
	)
	r.Issues = append(r.Issues, is)
}
