package terminal

import "strconv"

// keyToName maps Key constants to canonical names used in config and output
var keyToName = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",

	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",
	KeyInsert:   "insert",

	KeyCtrlSpace:        "ctrl_space",
	KeyCtrlBackslash:    "ctrl_backslash",
	KeyCtrlBracketRight: "ctrl_bracket_right",
	KeyCtrlCaret:        "ctrl_caret",
	KeyCtrlUnderscore:   "ctrl_underscore",
}

// nameToKey is the reverse lookup, built from keyToName
var nameToKey map[string]Key

func init() {
	// f1..f12 and ctrl_a..ctrl_z follow their constant order
	for i := 0; i < 12; i++ {
		keyToName[KeyF1+Key(i)] = "f" + strconv.Itoa(i+1)
	}
	for c := byte('a'); c <= 'z'; c++ {
		keyToName[KeyCtrlA+Key(c-'a')] = "ctrl_" + string(c)
	}

	nameToKey = make(map[string]Key, len(keyToName)+2)
	for k, v := range keyToName {
		nameToKey[v] = k
	}
	nameToKey["shift_tab"] = KeyBacktab
	nameToKey["esc"] = KeyEscape
}

// KeyName returns the canonical name for a Key, empty for KeyNone and KeyRune
func KeyName(k Key) string {
	return keyToName[k]
}

// KeyByName resolves a canonical name to a Key
func KeyByName(name string) (Key, bool) {
	k, ok := nameToKey[name]
	return k, ok
}
