package keytable

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/samcharles93/keyinfo/internal/rawbuf"
	"github.com/samcharles93/keyinfo/pkg/keys"
)

const (
	// RecordHeaderSize is the size, key and modifier bytes in front of
	// every record.
	RecordHeaderSize = 3
	// MaxRecordSize bounds a whole record, header included.
	MaxRecordSize = 255
	// MaxSequenceLength is the longest sequence a record can hold.
	MaxSequenceLength = MaxRecordSize - RecordHeaderSize

	// arena grows in blocks of this size
	growBlock = 256

	// DefaultArenaLimit caps the record store when no limit is configured.
	DefaultArenaLimit = 1 << 20
)

// RecordRef is a stable handle to a record: its offset in the arena. Refs
// stay valid across Append even though the arena itself may move.
type RecordRef int

// Record is a decoded view of one arena record. Bytes aliases the arena and
// is only valid until the next Append; use Clone to keep it.
type Record struct {
	Ref   RecordRef
	Key   keys.KeyID
	Mod   keys.Modifier
	Bytes []byte
}

// Clone returns a copy of r whose Bytes no longer alias the arena.
func (r Record) Clone() Record {
	r.Bytes = bytes.Clone(r.Bytes)
	return r
}

// RecordStore is an append-only arena of variable-length records laid out as
// [size][key][mod][bytes...].
type RecordStore struct {
	arena []byte
	used  int
	limit int
	count int
}

// NewRecordStore creates an empty store whose arena may grow up to limit
// bytes. A non-positive limit selects DefaultArenaLimit.
func NewRecordStore(limit int) *RecordStore {
	if limit <= 0 {
		limit = DefaultArenaLimit
	}
	return &RecordStore{limit: limit}
}

// Used returns the number of arena bytes holding records.
func (s *RecordStore) Used() int { return s.used }

// Capacity returns the current arena size.
func (s *RecordStore) Capacity() int { return len(s.arena) }

// Count returns the number of records.
func (s *RecordStore) Count() int { return s.count }

// Append stores a new record and returns its handle.
func (s *RecordStore) Append(seq []byte, key keys.KeyID, mod keys.Modifier) (RecordRef, error) {
	size := RecordHeaderSize + len(seq)
	if size > MaxRecordSize {
		return -1, fmt.Errorf("%w: %d byte sequence", ErrEntryTooLong, len(seq))
	}

	required := s.used + size
	if len(s.arena) < required {
		desired := rawbuf.Align(required, growBlock)
		if desired > s.limit {
			return -1, fmt.Errorf("%w: need %d bytes, limit %d", ErrOutOfMemory, desired, s.limit)
		}
		grown := make([]byte, desired)
		copy(grown, s.arena[:s.used])
		s.arena = grown
	}

	ref := RecordRef(s.used)
	rec := s.arena[s.used:required]
	rec[0] = byte(size)
	rec[1] = byte(key)
	rec[2] = byte(mod)
	copy(rec[RecordHeaderSize:], seq)
	s.used = required
	s.count++
	return ref, nil
}

// At decodes the record at ref.
func (s *RecordStore) At(ref RecordRef) (Record, bool) {
	off := int(ref)
	if off < 0 || off+RecordHeaderSize > s.used {
		return Record{}, false
	}
	size := int(s.arena[off])
	if size < RecordHeaderSize || off+size > s.used {
		return Record{}, false
	}
	return Record{
		Ref:   ref,
		Key:   keys.KeyID(s.arena[off+1]),
		Mod:   keys.Modifier(s.arena[off+2]),
		Bytes: s.arena[off+RecordHeaderSize : off+size],
	}, true
}

// Find returns the first record holding exactly seq.
func (s *RecordStore) Find(seq []byte) (Record, bool) {
	for it := s.Iterator(); ; {
		rec, ok := it.Next()
		if !ok {
			return Record{}, false
		}
		if bytes.Equal(rec.Bytes, seq) {
			return rec, true
		}
	}
}

// Iterator returns a cursor positioned at the first record.
func (s *RecordStore) Iterator() *Iterator {
	return &Iterator{store: s}
}

// All yields every record in insertion order with its index.
func (s *RecordStore) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		it := s.Iterator()
		for i := 0; ; i++ {
			rec, ok := it.Next()
			if !ok || !yield(i, rec) {
				return
			}
		}
	}
}

// Iterator walks a RecordStore by each record's declared size.
type Iterator struct {
	store  *RecordStore
	offset int
}

// Next returns the record under the cursor and advances past it. It reports
// false once the cursor reaches the store's used length.
func (it *Iterator) Next() (Record, bool) {
	if it.offset >= it.store.used {
		return Record{}, false
	}
	rec, ok := it.store.At(RecordRef(it.offset))
	if !ok {
		it.offset = it.store.used
		return Record{}, false
	}
	it.offset += RecordHeaderSize + len(rec.Bytes)
	return rec, true
}
