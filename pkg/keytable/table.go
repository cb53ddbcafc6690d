// Package keytable classifies raw key sequences into a 128-slot direct table
// or, when a sequence cannot be keyed by a single byte, into an append-only
// record store.
package keytable

import (
	"bytes"
	"fmt"

	"github.com/samcharles93/keyinfo/internal/escape"
	"github.com/samcharles93/keyinfo/internal/rawbuf"
	"github.com/samcharles93/keyinfo/pkg/keys"
)

// Placement tells where Classify put a sequence.
type Placement uint8

const (
	PlacedDirect Placement = iota + 1
	PlacedRecord
)

func (p Placement) String() string {
	switch p {
	case PlacedDirect:
		return "direct"
	case PlacedRecord:
		return "record"
	default:
		return "none"
	}
}

// Outcome reports the result of one Classify call.
type Outcome struct {
	Placement Placement
	// Slot is the direct-table index when Placement is PlacedDirect.
	Slot int
	// Ref is the record handle when Placement is PlacedRecord.
	Ref RecordRef
	// Existing is true when the call matched an entry already present and
	// changed nothing.
	Existing bool
}

// Table is a direct table plus the record store that backs it. It is not
// safe for concurrent mutation.
type Table struct {
	direct  DirectTable
	records *RecordStore
}

// Option configures a Table.
type Option func(*options)

type options struct {
	arenaLimit int
}

// WithArenaLimit caps the record store arena in bytes.
func WithArenaLimit(n int) Option {
	return func(o *options) { o.arenaLimit = n }
}

// New returns an empty table.
func New(opts ...Option) *Table {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Table{records: NewRecordStore(o.arenaLimit)}
}

// Direct exposes the direct table.
func (t *Table) Direct() *DirectTable { return &t.direct }

// Records exposes the record store.
func (t *Table) Records() *RecordStore { return t.records }

// Classify stores seq as the encoding of (key, mod).
//
// A single byte below 128 and any sequence the escape grammar resolves to a
// keycode in [0,128) go to the direct table, as long as a captured modifier
// parameter agrees with mod. Everything else is appended to the record store.
// Classifying the same triple twice is a no-op.
func (t *Table) Classify(seq []byte, key keys.KeyID, mod keys.Modifier) (Outcome, error) {
	if len(seq) == 0 {
		return Outcome{}, ErrEmptySequence
	}

	if code, ok := directCode(seq, mod); ok {
		existing, fresh, ok := t.direct.claim(code, key)
		if !ok {
			return Outcome{}, &CollisionError{
				Slot:     code,
				Sequence: bytes.Clone(seq),
				Existing: existing,
				Wanted:   key,
			}
		}
		return Outcome{Placement: PlacedDirect, Slot: code, Existing: !fresh}, nil
	}

	return t.appendRecord(seq, key, mod)
}

func (t *Table) appendRecord(seq []byte, key keys.KeyID, mod keys.Modifier) (Outcome, error) {
	if rec, ok := t.records.Find(seq); ok {
		if rec.Key == key && rec.Mod == mod {
			return Outcome{Placement: PlacedRecord, Ref: rec.Ref, Existing: true}, nil
		}
		return Outcome{}, &CollisionError{
			Slot:     -1,
			Sequence: bytes.Clone(seq),
			Existing: rec.Key,
			Wanted:   key,
		}
	}
	ref, err := t.records.Append(seq, key, mod)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Placement: PlacedRecord, Ref: ref}, nil
}

// directCode returns the direct-table index for seq, or false when seq must
// go to the record store.
func directCode(seq []byte, mod keys.Modifier) (int, bool) {
	if len(seq) == 1 {
		if seq[0] < DirectSize && mod == keys.ModNone {
			return int(seq[0]), true
		}
		return 0, false
	}

	d, ok := escape.Decode(seq)
	if !ok || !InRange(d.Keycode) {
		return 0, false
	}
	// The slot carries no modifier, so the terminal's own parameter has to
	// say the same thing the caller does.
	if d.HasModcode && d.Modcode-1 != int(mod) {
		return 0, false
	}
	return d.Keycode, true
}

// Match is the decoded meaning of an input sequence.
type Match struct {
	Key keys.KeyID
	Mod keys.Modifier
}

// Lookup resolves an input sequence against the table. Stored records win;
// then a complete UTF-8 character maps to keys.UTF8; a single ASCII byte is
// its direct slot if set, or itself; escape sequences resolve through their
// direct slot with the modifier rebuilt from the terminal's parameter.
func (t *Table) Lookup(seq []byte) (Match, bool) {
	if len(seq) == 0 {
		return Match{}, false
	}
	if rec, ok := t.records.Find(seq); ok {
		return Match{Key: rec.Key, Mod: rec.Mod}, true
	}

	lead := seq[0]
	if lead >= 0x80 {
		if rawbuf.UTF8Stride(lead) == len(seq) {
			return Match{Key: keys.UTF8}, true
		}
		return Match{}, false
	}
	if len(seq) == 1 {
		if key, ok := t.direct.Get(int(lead)); ok {
			return Match{Key: key}, true
		}
		return Match{Key: keys.KeyID(lead)}, true
	}

	d, ok := escape.Decode(seq)
	if !ok {
		return Match{}, false
	}
	key, ok := t.direct.Get(d.Keycode)
	if !ok {
		return Match{}, false
	}
	m := Match{Key: key}
	if d.HasModcode {
		if mod, ok := keys.FromModcode(uint8(d.Modcode)); ok {
			m.Mod = mod
		}
	}
	return m, true
}

// Bindings returns the direct slots holding key and copies of the records
// bound to it.
func (t *Table) Bindings(key keys.KeyID) ([]Slot, []Record) {
	var slots []Slot
	for _, s := range t.direct.Entries() {
		if s.Key == key {
			slots = append(slots, s)
		}
	}
	var recs []Record
	for _, r := range t.records.All() {
		if r.Key == key {
			recs = append(recs, r.Clone())
		}
	}
	return slots, recs
}

func (o Outcome) String() string {
	switch o.Placement {
	case PlacedDirect:
		return fmt.Sprintf("direct[%d]", o.Slot)
	case PlacedRecord:
		return fmt.Sprintf("record@%d", o.Ref)
	default:
		return "none"
	}
}
