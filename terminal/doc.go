// @focus: #input { events decode }
// Package terminal defines the terminal input event model and the incremental
// decoder that turns raw input bytes into events.
//
// Features:
//   - Keys with Shift/Alt/Ctrl modifiers (xterm CSI, SS3, linux console)
//   - UTF-8 runes, including Alt+rune via ESC prefix
//   - SGR and X10 mouse reports, focus in/out, bracketed paste
//   - Cursor position and device attribute replies as internal events
//
// The decoder is stateless: callers own the pending byte buffer and feed it
// one byte at a time, clearing it whenever Parse returns an event or an error.
package terminal
