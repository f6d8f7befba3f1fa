// @focus: #input { keys }
package terminal

import "strings"

// Key represents a decoded input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // Shift+Tab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Ctrl+letter (Ctrl+A = 0x01, Ctrl+Z = 0x1A)
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ

	// Ctrl+special
	KeyCtrlSpace
	KeyCtrlBackslash
	KeyCtrlBracketRight
	KeyCtrlCaret
	KeyCtrlUnderscore
)

// String returns the canonical key name, "rune" for KeyRune and "none" for unknown keys
func (k Key) String() string {
	if k == KeyRune {
		return "rune"
	}
	if name, ok := keyToName[k]; ok {
		return name
	}
	return "none"
}

// Modifier flags
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

// String joins set modifiers in ctrl+alt+shift order
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	parts := make([]string, 0, 3)
	if m&ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if m&ModShift != 0 {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}

// modifierFromParam decodes the xterm modifier parameter (1 + bitmask)
// Meta (bit 3) folds into Alt, anything above is ignored
func modifierFromParam(p int) Modifier {
	if p <= 1 {
		return ModNone
	}
	bits := p - 1
	var m Modifier
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&2 != 0 || bits&8 != 0 {
		m |= ModAlt
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	return m
}

// letterFinals maps CSI/SS3 final bytes to keys (ESC [ 1 ; mod X and ESC O X)
var letterFinals = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

// tildeCodes maps the numeric code of ESC [ code ; mod ~ sequences
var tildeCodes = map[int]Key{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

// linuxConsoleFinals maps ESC [ [ X function keys (linux console)
var linuxConsoleFinals = map[byte]Key{
	'A': KeyF1,
	'B': KeyF2,
	'C': KeyF3,
	'D': KeyF4,
	'E': KeyF5,
}

// controlKeys maps C0 control bytes that are not plain Ctrl+letter
var controlKeys = map[byte]Key{
	0x00: KeyCtrlSpace,
	0x08: KeyBackspace,
	0x09: KeyTab,
	0x0a: KeyEnter,
	0x0d: KeyEnter,
	0x1b: KeyEscape,
	0x1c: KeyCtrlBackslash,
	0x1d: KeyCtrlBracketRight,
	0x1e: KeyCtrlCaret,
	0x1f: KeyCtrlUnderscore,
	0x7f: KeyBackspace,
}

// controlKey maps a C0 control byte or DEL to its key
func controlKey(b byte) Key {
	if k, ok := controlKeys[b]; ok {
		return k
	}
	if b >= 0x01 && b <= 0x1a {
		return KeyCtrlA + Key(b-0x01)
	}
	return KeyNone
}
