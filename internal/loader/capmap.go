package loader

import "github.com/samcharles93/keyinfo/pkg/keys"

// LegacyCapability maps a legacy string-table ordinal to a key.
type LegacyCapability struct {
	Ordinal int
	Name    string
	Key     keys.KeyID
	Mod     keys.Modifier
}

// NamedCapability maps an extended capability name to a key.
type NamedCapability struct {
	Name string
	Key  keys.KeyID
	Mod  keys.Modifier
}

// LegacyCapabilities lists the key capabilities of the legacy string table,
// in the order they are loaded. kf13 and up are the shifted, control,
// control-shift, alt and alt-shift function keys.
var LegacyCapabilities = []LegacyCapability{
	{Ordinal: 55, Name: "kbs", Key: keys.Backspace, Mod: keys.ModNone},
	{Ordinal: 59, Name: "kdch1", Key: keys.Delete, Mod: keys.ModNone},
	{Ordinal: 61, Name: "kcud1", Key: keys.Down, Mod: keys.ModNone},
	{Ordinal: 66, Name: "kf1", Key: keys.F1, Mod: keys.ModNone},
	{Ordinal: 67, Name: "kf10", Key: keys.F10, Mod: keys.ModNone},
	{Ordinal: 68, Name: "kf2", Key: keys.F2, Mod: keys.ModNone},
	{Ordinal: 69, Name: "kf3", Key: keys.F3, Mod: keys.ModNone},
	{Ordinal: 70, Name: "kf4", Key: keys.F4, Mod: keys.ModNone},
	{Ordinal: 71, Name: "kf5", Key: keys.F5, Mod: keys.ModNone},
	{Ordinal: 72, Name: "kf6", Key: keys.F6, Mod: keys.ModNone},
	{Ordinal: 73, Name: "kf7", Key: keys.F7, Mod: keys.ModNone},
	{Ordinal: 74, Name: "kf8", Key: keys.F8, Mod: keys.ModNone},
	{Ordinal: 75, Name: "kf9", Key: keys.F9, Mod: keys.ModNone},
	{Ordinal: 76, Name: "khome", Key: keys.Home, Mod: keys.ModNone},
	{Ordinal: 77, Name: "kich1", Key: keys.Insert, Mod: keys.ModNone},
	{Ordinal: 79, Name: "kcub1", Key: keys.Left, Mod: keys.ModNone},
	{Ordinal: 81, Name: "knp", Key: keys.PageDown, Mod: keys.ModNone},
	{Ordinal: 82, Name: "kpp", Key: keys.PageUp, Mod: keys.ModNone},
	{Ordinal: 83, Name: "kcuf1", Key: keys.Right, Mod: keys.ModNone},
	{Ordinal: 87, Name: "kcuu1", Key: keys.Up, Mod: keys.ModNone},
	{Ordinal: 141, Name: "kb2", Key: keys.Center, Mod: keys.ModNone},
	{Ordinal: 148, Name: "kcbt", Key: keys.Tab, Mod: keys.ModShift},
	{Ordinal: 164, Name: "kend", Key: keys.End, Mod: keys.ModNone},
	{Ordinal: 165, Name: "kent", Key: keys.Enter, Mod: keys.ModNone},
	{Ordinal: 216, Name: "kf11", Key: keys.F11, Mod: keys.ModNone},
	{Ordinal: 217, Name: "kf12", Key: keys.F12, Mod: keys.ModNone},
	{Ordinal: 218, Name: "kf13", Key: keys.F1, Mod: keys.ModShift},
	{Ordinal: 219, Name: "kf14", Key: keys.F2, Mod: keys.ModShift},
	{Ordinal: 220, Name: "kf15", Key: keys.F3, Mod: keys.ModShift},
	{Ordinal: 221, Name: "kf16", Key: keys.F4, Mod: keys.ModShift},
	{Ordinal: 222, Name: "kf17", Key: keys.F5, Mod: keys.ModShift},
	{Ordinal: 223, Name: "kf18", Key: keys.F6, Mod: keys.ModShift},
	{Ordinal: 224, Name: "kf19", Key: keys.F7, Mod: keys.ModShift},
	{Ordinal: 225, Name: "kf20", Key: keys.F8, Mod: keys.ModShift},
	{Ordinal: 226, Name: "kf21", Key: keys.F9, Mod: keys.ModShift},
	{Ordinal: 227, Name: "kf22", Key: keys.F10, Mod: keys.ModShift},
	{Ordinal: 228, Name: "kf23", Key: keys.F11, Mod: keys.ModShift},
	{Ordinal: 229, Name: "kf24", Key: keys.F12, Mod: keys.ModShift},
	{Ordinal: 230, Name: "kf25", Key: keys.F1, Mod: keys.ModCtrl},
	{Ordinal: 231, Name: "kf26", Key: keys.F2, Mod: keys.ModCtrl},
	{Ordinal: 232, Name: "kf27", Key: keys.F3, Mod: keys.ModCtrl},
	{Ordinal: 233, Name: "kf28", Key: keys.F4, Mod: keys.ModCtrl},
	{Ordinal: 234, Name: "kf29", Key: keys.F5, Mod: keys.ModCtrl},
	{Ordinal: 235, Name: "kf30", Key: keys.F6, Mod: keys.ModCtrl},
	{Ordinal: 236, Name: "kf31", Key: keys.F7, Mod: keys.ModCtrl},
	{Ordinal: 237, Name: "kf32", Key: keys.F8, Mod: keys.ModCtrl},
	{Ordinal: 238, Name: "kf33", Key: keys.F9, Mod: keys.ModCtrl},
	{Ordinal: 239, Name: "kf34", Key: keys.F10, Mod: keys.ModCtrl},
	{Ordinal: 240, Name: "kf35", Key: keys.F11, Mod: keys.ModCtrl},
	{Ordinal: 241, Name: "kf36", Key: keys.F12, Mod: keys.ModCtrl},
	{Ordinal: 242, Name: "kf37", Key: keys.F1, Mod: keys.ModCtrl | keys.ModShift},
	{Ordinal: 243, Name: "kf38", Key: keys.F2, Mod: keys.ModCtrl | keys.ModShift},
	{Ordinal: 244, Name: "kf39", Key: keys.F3, Mod: keys.ModCtrl | keys.ModShift},
	{Ordinal: 245, Name: "kf40", Key: keys.F4, Mod: keys.ModCtrl | keys.ModShift},
	{Ordinal: 246, Name: "kf41", Key: keys.F5, Mod: keys.ModCtrl | keys.ModShift},
	{Ordinal: 247, Name: "kf42", Key: keys.F6, Mod: keys.ModCtrl | keys.ModShift},
	{Ordinal: 248, Name: "kf43", Key: keys.F7, Mod: keys.ModCtrl | keys.ModShift},
	{Ordinal: 249, Name: "kf44", Key: keys.F8, Mod: keys.ModCtrl | keys.ModShift},
	{Ordinal: 250, Name: "kf45", Key: keys.F9, Mod: keys.ModCtrl | keys.ModShift},
	{Ordinal: 251, Name: "kf46", Key: keys.F10, Mod: keys.ModCtrl | keys.ModShift},
	{Ordinal: 252, Name: "kf47", Key: keys.F11, Mod: keys.ModCtrl | keys.ModShift},
	{Ordinal: 253, Name: "kf48", Key: keys.F12, Mod: keys.ModCtrl | keys.ModShift},
	{Ordinal: 254, Name: "kf49", Key: keys.F1, Mod: keys.ModAlt},
	{Ordinal: 255, Name: "kf50", Key: keys.F2, Mod: keys.ModAlt},
	{Ordinal: 256, Name: "kf51", Key: keys.F3, Mod: keys.ModAlt},
	{Ordinal: 257, Name: "kf52", Key: keys.F4, Mod: keys.ModAlt},
	{Ordinal: 258, Name: "kf53", Key: keys.F5, Mod: keys.ModAlt},
	{Ordinal: 259, Name: "kf54", Key: keys.F6, Mod: keys.ModAlt},
	{Ordinal: 260, Name: "kf55", Key: keys.F7, Mod: keys.ModAlt},
	{Ordinal: 261, Name: "kf56", Key: keys.F8, Mod: keys.ModAlt},
	{Ordinal: 262, Name: "kf57", Key: keys.F9, Mod: keys.ModAlt},
	{Ordinal: 263, Name: "kf58", Key: keys.F10, Mod: keys.ModAlt},
	{Ordinal: 264, Name: "kf59", Key: keys.F11, Mod: keys.ModAlt},
	{Ordinal: 265, Name: "kf60", Key: keys.F12, Mod: keys.ModAlt},
	{Ordinal: 266, Name: "kf61", Key: keys.F1, Mod: keys.ModAlt | keys.ModShift},
	{Ordinal: 267, Name: "kf62", Key: keys.F2, Mod: keys.ModAlt | keys.ModShift},
	{Ordinal: 268, Name: "kf63", Key: keys.F3, Mod: keys.ModAlt | keys.ModShift},
}

// ExtendedCapabilities lists the modified cursor and editing keys of the
// extended section. The numeric suffix is the xterm modifier parameter, so
// the modifier stored here is that parameter minus one; no suffix means 2.
var ExtendedCapabilities = []NamedCapability{
	{Name: "kDC", Key: keys.Delete, Mod: keys.ModShift},
	{Name: "kDC3", Key: keys.Delete, Mod: keys.ModAlt},
	{Name: "kDC4", Key: keys.Delete, Mod: keys.ModAlt | keys.ModShift},
	{Name: "kDC5", Key: keys.Delete, Mod: keys.ModCtrl},
	{Name: "kDC6", Key: keys.Delete, Mod: keys.ModCtrl | keys.ModShift},
	{Name: "kDC7", Key: keys.Delete, Mod: keys.ModCtrl | keys.ModAlt},
	{Name: "kDN", Key: keys.Down, Mod: keys.ModShift},
	{Name: "kDN3", Key: keys.Down, Mod: keys.ModAlt},
	{Name: "kDN4", Key: keys.Down, Mod: keys.ModAlt | keys.ModShift},
	{Name: "kDN5", Key: keys.Down, Mod: keys.ModCtrl},
	{Name: "kDN6", Key: keys.Down, Mod: keys.ModCtrl | keys.ModShift},
	{Name: "kDN7", Key: keys.Down, Mod: keys.ModCtrl | keys.ModAlt},
	{Name: "kEND", Key: keys.End, Mod: keys.ModShift},
	{Name: "kEND3", Key: keys.End, Mod: keys.ModAlt},
	{Name: "kEND4", Key: keys.End, Mod: keys.ModAlt | keys.ModShift},
	{Name: "kEND5", Key: keys.End, Mod: keys.ModCtrl},
	{Name: "kEND6", Key: keys.End, Mod: keys.ModCtrl | keys.ModShift},
	{Name: "kEND7", Key: keys.End, Mod: keys.ModCtrl | keys.ModAlt},
	{Name: "kHOM", Key: keys.Home, Mod: keys.ModShift},
	{Name: "kHOM3", Key: keys.Home, Mod: keys.ModAlt},
	{Name: "kHOM4", Key: keys.Home, Mod: keys.ModAlt | keys.ModShift},
	{Name: "kHOM5", Key: keys.Home, Mod: keys.ModCtrl},
	{Name: "kHOM6", Key: keys.Home, Mod: keys.ModCtrl | keys.ModShift},
	{Name: "kHOM7", Key: keys.Home, Mod: keys.ModCtrl | keys.ModAlt},
	{Name: "kIC", Key: keys.Insert, Mod: keys.ModShift},
	{Name: "kIC3", Key: keys.Insert, Mod: keys.ModAlt},
	{Name: "kIC4", Key: keys.Insert, Mod: keys.ModAlt | keys.ModShift},
	{Name: "kIC5", Key: keys.Insert, Mod: keys.ModCtrl},
	{Name: "kIC6", Key: keys.Insert, Mod: keys.ModCtrl | keys.ModShift},
	{Name: "kIC7", Key: keys.Insert, Mod: keys.ModCtrl | keys.ModAlt},
	{Name: "kLFT", Key: keys.Left, Mod: keys.ModShift},
	{Name: "kLFT3", Key: keys.Left, Mod: keys.ModAlt},
	{Name: "kLFT4", Key: keys.Left, Mod: keys.ModAlt | keys.ModShift},
	{Name: "kLFT5", Key: keys.Left, Mod: keys.ModCtrl},
	{Name: "kLFT6", Key: keys.Left, Mod: keys.ModCtrl | keys.ModShift},
	{Name: "kLFT7", Key: keys.Left, Mod: keys.ModCtrl | keys.ModAlt},
	{Name: "kNXT", Key: keys.PageDown, Mod: keys.ModShift},
	{Name: "kNXT3", Key: keys.PageDown, Mod: keys.ModAlt},
	{Name: "kNXT4", Key: keys.PageDown, Mod: keys.ModAlt | keys.ModShift},
	{Name: "kNXT5", Key: keys.PageDown, Mod: keys.ModCtrl},
	{Name: "kNXT6", Key: keys.PageDown, Mod: keys.ModCtrl | keys.ModShift},
	{Name: "kNXT7", Key: keys.PageDown, Mod: keys.ModCtrl | keys.ModAlt},
	{Name: "kPRV", Key: keys.PageUp, Mod: keys.ModShift},
	{Name: "kPRV3", Key: keys.PageUp, Mod: keys.ModAlt},
	{Name: "kPRV4", Key: keys.PageUp, Mod: keys.ModAlt | keys.ModShift},
	{Name: "kPRV5", Key: keys.PageUp, Mod: keys.ModCtrl},
	{Name: "kPRV6", Key: keys.PageUp, Mod: keys.ModCtrl | keys.ModShift},
	{Name: "kPRV7", Key: keys.PageUp, Mod: keys.ModCtrl | keys.ModAlt},
	{Name: "kRIT", Key: keys.Right, Mod: keys.ModShift},
	{Name: "kRIT3", Key: keys.Right, Mod: keys.ModAlt},
	{Name: "kRIT4", Key: keys.Right, Mod: keys.ModAlt | keys.ModShift},
	{Name: "kRIT5", Key: keys.Right, Mod: keys.ModCtrl},
	{Name: "kRIT6", Key: keys.Right, Mod: keys.ModCtrl | keys.ModShift},
	{Name: "kRIT7", Key: keys.Right, Mod: keys.ModCtrl | keys.ModAlt},
	{Name: "kUP", Key: keys.Up, Mod: keys.ModShift},
	{Name: "kUP3", Key: keys.Up, Mod: keys.ModAlt},
	{Name: "kUP4", Key: keys.Up, Mod: keys.ModAlt | keys.ModShift},
	{Name: "kUP5", Key: keys.Up, Mod: keys.ModCtrl},
	{Name: "kUP6", Key: keys.Up, Mod: keys.ModCtrl | keys.ModShift},
	{Name: "kUP7", Key: keys.Up, Mod: keys.ModCtrl | keys.ModAlt},
}

var extendedByName = func() map[string]NamedCapability {
	m := make(map[string]NamedCapability, len(ExtendedCapabilities))
	for _, c := range ExtendedCapabilities {
		m[c.Name] = c
	}
	return m
}()

// LookupExtended finds an extended capability by name.
func LookupExtended(name string) (NamedCapability, bool) {
	c, ok := extendedByName[name]
	return c, ok
}
