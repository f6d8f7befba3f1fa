package source

import (
	"io"
	"os"
)

// EmergencyReset attempts to restore the terminal to a sane state
// Call this from panic recovery when a source cannot be stopped normally
func EmergencyReset(w io.Writer) {
	all := Modes{Mouse: true, Focus: true, Paste: true}
	w.Write(all.disableSeq())
	w.Write(seqCursorShow)
	w.Write(seqSGR0)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
