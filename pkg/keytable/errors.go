package keytable

import (
	"errors"
	"fmt"

	"github.com/samcharles93/keyinfo/internal/rawbuf"
	"github.com/samcharles93/keyinfo/pkg/keys"
)

var (
	ErrEntryTooLong  = errors.New("record exceeds 255 bytes")
	ErrOutOfMemory   = errors.New("record store limit reached")
	ErrKeyCollision  = errors.New("key collision")
	ErrEmptySequence = errors.New("empty sequence")
)

// CollisionError describes a sequence that resolves to an entry already
// claimed by a different key. Slot is the direct-table index, or -1 when the
// clash is between two identical record-store sequences.
type CollisionError struct {
	Slot     int
	Sequence []byte
	Existing keys.KeyID
	Wanted   keys.KeyID
}

func (e *CollisionError) Error() string {
	if e.Slot < 0 {
		return fmt.Sprintf("%v: %s already stored as %s, wanted %s",
			ErrKeyCollision, rawbuf.Armor(e.Sequence), e.Existing, e.Wanted)
	}
	return fmt.Sprintf("%v: slot %d (%s) holds %s, wanted %s",
		ErrKeyCollision, e.Slot, rawbuf.Armor(e.Sequence), e.Existing, e.Wanted)
}

func (e *CollisionError) Unwrap() error {
	return ErrKeyCollision
}
