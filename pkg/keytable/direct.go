package keytable

import "github.com/samcharles93/keyinfo/pkg/keys"

// DirectSize is the number of direct-table slots, one per ASCII byte.
const DirectSize = 128

// DirectTable maps a single byte keycode to a key.
type DirectTable struct {
	slots [DirectSize]keys.KeyID
	set   [DirectSize]bool
	count int
}

// Slot is one populated direct-table entry.
type Slot struct {
	Code uint8
	Key  keys.KeyID
}

// InRange reports whether code indexes a slot.
func InRange(code int) bool {
	return code >= 0 && code < DirectSize
}

// Get returns the key stored at code.
func (d *DirectTable) Get(code int) (keys.KeyID, bool) {
	if !InRange(code) || !d.set[code] {
		return 0, false
	}
	return d.slots[code], true
}

// claim sets code to key. Claiming a slot already holding key is a no-op
// reported through fresh=false; a slot holding another key is left untouched
// and ok is false.
func (d *DirectTable) claim(code int, key keys.KeyID) (existing keys.KeyID, fresh, ok bool) {
	if d.set[code] {
		return d.slots[code], false, d.slots[code] == key
	}
	d.slots[code] = key
	d.set[code] = true
	d.count++
	return key, true, true
}

// Len returns the number of populated slots.
func (d *DirectTable) Len() int { return d.count }

// Entries lists populated slots in ascending code order.
func (d *DirectTable) Entries() []Slot {
	out := make([]Slot, 0, d.count)
	for i := range d.slots {
		if d.set[i] {
			out = append(out, Slot{Code: uint8(i), Key: d.slots[i]})
		}
	}
	return out
}
