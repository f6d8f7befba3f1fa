package source

// Terminal reporting mode toggles
var (
	seqMouseOn  = []byte("\x1b[?1000h\x1b[?1002h\x1b[?1006h") // Click + drag, SGR encoding
	seqMouseOff = []byte("\x1b[?1006l\x1b[?1002l\x1b[?1000l")
	seqFocusOn  = []byte("\x1b[?1004h")
	seqFocusOff = []byte("\x1b[?1004l")
	seqPasteOn  = []byte("\x1b[?2004h")
	seqPasteOff = []byte("\x1b[?2004l")

	seqCursorShow = []byte("\x1b[?25h")
	seqSGR0       = []byte("\x1b[0m")
)

// Modes selects the optional reports a terminal source asks for
type Modes struct {
	Mouse bool // SGR mouse press, release and drag
	Focus bool // Focus gained / lost
	Paste bool // Bracketed paste
}

func (m Modes) enableSeq() []byte {
	var b []byte
	if m.Mouse {
		b = append(b, seqMouseOn...)
	}
	if m.Focus {
		b = append(b, seqFocusOn...)
	}
	if m.Paste {
		b = append(b, seqPasteOn...)
	}
	return b
}

// disableSeq undoes enableSeq in reverse order
func (m Modes) disableSeq() []byte {
	var b []byte
	if m.Paste {
		b = append(b, seqPasteOff...)
	}
	if m.Focus {
		b = append(b, seqFocusOff...)
	}
	if m.Mouse {
		b = append(b, seqMouseOff...)
	}
	return b
}
