// @focus: #input { decode }
package terminal

import (
	"bytes"
	"unicode/utf8"
)

// Decoder turns the bytes accumulated for one pending event into that event.
// It returns ok=false and a nil error while the sequence is still incomplete.
// more reports whether further bytes are already known to follow, which lets
// a lone ESC at the end of a chunk resolve to the Escape key.
// A non-nil error means the buffer is malformed and must be discarded.
type Decoder func(buf []byte, more bool) (ev InternalEvent, ok bool, err error)

const (
	// maxCSILen bounds parameterized sequences; longer input is treated as garbage
	maxCSILen = 64
	// maxPasteLen bounds a bracketed paste held in the pending buffer
	maxPasteLen = 1 << 20
)

var (
	pasteStart = []byte("\x1b[200~")
	pasteEnd   = []byte("\x1b[201~")
)

// Parse is the default Decoder for xterm-compatible input.
// It expects buf to hold exactly the bytes of one pending event, fed one byte
// at a time, which is how the stream producer drives it.
func Parse(buf []byte, more bool) (InternalEvent, bool, error) {
	if len(buf) == 0 {
		return incomplete()
	}
	if buf[0] == 0x1b {
		return parseEscape(buf, more)
	}
	return parseSingle(buf, ModNone)
}

var _ Decoder = Parse

func incomplete() (InternalEvent, bool, error) {
	return InternalEvent{}, false, nil
}

func emit(ev Event) (InternalEvent, bool, error) {
	return Public(ev), true, nil
}

func emitKey(k Key, mod Modifier) (InternalEvent, bool, error) {
	return emit(NewKeyEvent(k, mod))
}

// parseEscape handles everything starting with ESC
func parseEscape(buf []byte, more bool) (InternalEvent, bool, error) {
	if len(buf) == 1 {
		if more {
			return incomplete()
		}
		// Nothing follows in this chunk: standalone Escape
		return emitKey(KeyEscape, ModNone)
	}

	switch buf[1] {
	case '[':
		return parseCSI(buf)
	case 'O':
		return parseSS3(buf)
	case 0x1b:
		return emitKey(KeyEscape, ModAlt)
	}

	// ESC + anything else is Alt+<that key>
	ev, ok, err := parseSingle(buf[1:], ModAlt)
	if err != nil {
		return InternalEvent{}, false, malformed(buf, "invalid character after escape")
	}
	return ev, ok, nil
}

// parseSingle decodes a control byte, ASCII character or UTF-8 rune
func parseSingle(buf []byte, mod Modifier) (InternalEvent, bool, error) {
	b := buf[0]
	switch {
	case b < 0x20 || b == 0x7f:
		return emitKey(controlKey(b), mod)
	case b < 0x80:
		return emit(NewRuneEvent(rune(b), mod))
	}
	return parseUTF8(buf, mod)
}

// parseUTF8 waits for a full multibyte rune, rejecting bad encodings early
func parseUTF8(buf []byte, mod Modifier) (InternalEvent, bool, error) {
	need := utf8SeqLen(buf[0])
	if need == 0 {
		return InternalEvent{}, false, malformed(buf, "invalid utf-8 start byte")
	}
	for _, c := range buf[1:] {
		if c&0xc0 != 0x80 {
			return InternalEvent{}, false, malformed(buf, "invalid utf-8 continuation byte")
		}
	}
	if len(buf) < need {
		return incomplete()
	}

	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 {
		return InternalEvent{}, false, malformed(buf, "invalid utf-8 encoding")
	}
	return emit(NewRuneEvent(r, mod))
}

// utf8SeqLen returns expected UTF-8 sequence length from start byte, 0 if invalid
func utf8SeqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	}
	return 0
}

// parseSS3 handles ESC O X
func parseSS3(buf []byte) (InternalEvent, bool, error) {
	if len(buf) < 3 {
		return incomplete()
	}
	if k, ok := letterFinals[buf[2]]; ok {
		return emitKey(k, ModNone)
	}
	return InternalEvent{}, false, malformed(buf, "unknown SS3 sequence")
}

// parseCSI handles ESC [ ...
func parseCSI(buf []byte) (InternalEvent, bool, error) {
	if len(buf) < 3 {
		return incomplete()
	}
	if bytes.HasPrefix(buf, pasteStart) {
		return parsePaste(buf)
	}

	c := buf[2]
	switch c {
	case '[':
		if len(buf) < 4 {
			return incomplete()
		}
		if k, ok := linuxConsoleFinals[buf[3]]; ok {
			return emitKey(k, ModNone)
		}
		return InternalEvent{}, false, malformed(buf, "unknown linux console sequence")
	case 'M':
		return parseX10Mouse(buf)
	case '<':
		return parseSGRMouse(buf)
	case 'I':
		return emit(Event{Type: EventFocusGained})
	case 'O':
		return emit(Event{Type: EventFocusLost})
	case 'Z':
		return emitKey(KeyBacktab, ModShift)
	}

	if k, ok := letterFinals[c]; ok {
		return emitKey(k, ModNone)
	}
	if (c >= '0' && c <= '9') || c == ';' || c == '?' {
		return parseCSIParams(buf)
	}
	if c < 0x20 || c > 0x7e {
		return InternalEvent{}, false, malformed(buf, "invalid byte in CSI sequence")
	}
	return InternalEvent{}, false, malformed(buf, "unsupported CSI sequence")
}

// parseCSIParams handles ESC [ [?] params final
func parseCSIParams(buf []byte) (InternalEvent, bool, error) {
	body := buf[2:]
	final := body[len(body)-1]

	switch {
	case final < 0x20 || final > 0x7e:
		return InternalEvent{}, false, malformed(buf, "invalid byte in CSI sequence")
	case final < 0x40:
		// Still in parameter or intermediate bytes
		if len(buf) > maxCSILen {
			return InternalEvent{}, false, malformed(buf, "CSI sequence too long")
		}
		return incomplete()
	}

	private := body[0] == '?'
	raw := body[:len(body)-1]
	if private {
		raw = raw[1:]
	}
	params, ok := parseParams(raw)
	if !ok {
		return InternalEvent{}, false, malformed(buf, "invalid CSI parameters")
	}

	if private {
		if final == 'c' {
			return InternalEvent{Kind: InternalDeviceAttributes}, true, nil
		}
		return InternalEvent{}, false, malformed(buf, "unsupported private CSI sequence")
	}

	switch final {
	case '~':
		k, ok := tildeCodes[params[0]]
		if !ok {
			return InternalEvent{}, false, malformed(buf, "unknown key code")
		}
		mod := ModNone
		if len(params) > 1 {
			mod = modifierFromParam(params[1])
		}
		return emitKey(k, mod)
	case 'R':
		// Cursor position reports win over modified F3, which shares the final byte
		if len(params) == 2 && params[0] > 0 && params[1] > 0 {
			return CursorPosition(params[1]-1, params[0]-1), true, nil
		}
	}

	if k, ok := letterFinals[final]; ok && len(params) <= 2 {
		mod := ModNone
		if len(params) == 2 {
			mod = modifierFromParam(params[1])
		}
		return emitKey(k, mod)
	}
	return InternalEvent{}, false, malformed(buf, "unsupported CSI sequence")
}

// parseParams splits "n;n;n" into integers, empty fields read as 0
func parseParams(p []byte) ([]int, bool) {
	params := make([]int, 0, 4)
	val := 0
	for _, c := range p {
		switch {
		case c >= '0' && c <= '9':
			val = val*10 + int(c-'0')
			if val > 9999 { // Sanity limit
				return nil, false
			}
		case c == ';':
			params = append(params, val)
			val = 0
		default:
			return nil, false
		}
	}
	return append(params, val), true
}

// parsePaste collects a bracketed paste up to the closing marker
func parsePaste(buf []byte) (InternalEvent, bool, error) {
	body := buf[len(pasteStart):]
	if !bytes.HasSuffix(body, pasteEnd) {
		if len(buf) > maxPasteLen {
			return InternalEvent{}, false, malformed(buf[:len(pasteStart)], "bracketed paste too long")
		}
		return incomplete()
	}
	text := string(body[:len(body)-len(pasteEnd)])
	return emit(Event{Type: EventPaste, Text: text})
}

// parseX10Mouse handles ESC [ M Cb Cx Cy (values offset by 32)
func parseX10Mouse(buf []byte) (InternalEvent, bool, error) {
	if len(buf) < 6 {
		return incomplete()
	}
	btn := int(buf[3]) - 32
	x := int(buf[4]) - 32
	y := int(buf[5]) - 32
	if btn < 0 || x < 1 || y < 1 {
		return InternalEvent{}, false, malformed(buf, "invalid X10 mouse report")
	}
	return emit(mouseEvent(btn, x, y, false))
}

// parseSGRMouse handles ESC [ < Btn ; X ; Y M/m
func parseSGRMouse(buf []byte) (InternalEvent, bool, error) {
	if len(buf) < 4 {
		return incomplete()
	}
	last := buf[len(buf)-1]
	if last != 'M' && last != 'm' {
		if (last >= '0' && last <= '9') || last == ';' {
			if len(buf) > maxCSILen {
				return InternalEvent{}, false, malformed(buf, "SGR mouse report too long")
			}
			return incomplete()
		}
		return InternalEvent{}, false, malformed(buf, "invalid SGR mouse report")
	}

	params, ok := parseParams(buf[3 : len(buf)-1])
	if !ok || len(params) != 3 || params[1] < 1 || params[2] < 1 {
		return InternalEvent{}, false, malformed(buf, "invalid SGR mouse report")
	}
	return emit(mouseEvent(params[0], params[1], params[2], last == 'm'))
}
