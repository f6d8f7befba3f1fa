package terminal

import (
	"fmt"
	"strconv"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventMouse
	EventPaste
	EventFocusGained
	EventFocusLost
)

var eventTypeNames = [...]string{
	EventNone:        "none",
	EventKey:         "key",
	EventResize:      "resize",
	EventMouse:       "mouse",
	EventPaste:       "paste",
	EventFocusGained: "focus_gained",
	EventFocusLost:   "focus_lost",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Event is a decoded terminal event visible to stream consumers
// Events are plain values; copies never share state
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier
	Width     int    // Columns, for EventResize
	Height    int    // Rows, for EventResize
	Text      string // For EventPaste

	// Mouse event fields, zero-indexed cell coordinates
	MouseX      int
	MouseY      int
	MouseBtn    MouseButton
	MouseAction MouseAction
}

// NewKeyEvent returns a key event for a non-rune key
func NewKeyEvent(k Key, mod Modifier) Event {
	return Event{Type: EventKey, Key: k, Modifiers: mod}
}

// NewRuneEvent returns a key event for a printable character
func NewRuneEvent(r rune, mod Modifier) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r, Modifiers: mod}
}

// NewResizeEvent returns a resize event for the given columns and rows
func NewResizeEvent(cols, rows int) Event {
	return Event{Type: EventResize, Width: cols, Height: rows}
}

// String renders the event for logs and the CLI
func (e Event) String() string {
	switch e.Type {
	case EventKey:
		name := e.Key.String()
		if e.Key == KeyRune {
			name = strconv.QuoteRune(e.Rune)
		}
		if mod := e.Modifiers.String(); mod != "" {
			return "key " + mod + "+" + name
		}
		return "key " + name
	case EventResize:
		return fmt.Sprintf("resize %dx%d", e.Width, e.Height)
	case EventMouse:
		s := fmt.Sprintf("mouse %s %s (%d,%d)", e.MouseAction, e.MouseBtn, e.MouseX, e.MouseY)
		if mod := e.Modifiers.String(); mod != "" {
			s += " " + mod
		}
		return s
	case EventPaste:
		return "paste " + strconv.Quote(e.Text)
	default:
		return e.Type.String()
	}
}

// InternalKind tags what an InternalEvent carries
type InternalKind uint8

const (
	// InternalPublic carries an Event for stream consumers
	InternalPublic InternalKind = iota
	// InternalCursorPosition is a cursor position report (ESC [ row ; col R)
	InternalCursorPosition
	// InternalDeviceAttributes is a primary device attributes reply (ESC [ ? ... c)
	InternalDeviceAttributes
)

// InternalEvent is the decoder's output. Only InternalPublic entries are
// ever handed to stream consumers; the other kinds answer synchronous
// queries that travel through the same input byte stream.
type InternalEvent struct {
	Kind  InternalKind
	Event Event

	// Zero-indexed, for InternalCursorPosition
	Col int
	Row int
}

// Public wraps ev as a consumer-visible internal event
func Public(ev Event) InternalEvent {
	return InternalEvent{Kind: InternalPublic, Event: ev}
}

// CursorPosition returns a cursor position sentinel (zero-indexed)
func CursorPosition(col, row int) InternalEvent {
	return InternalEvent{Kind: InternalCursorPosition, Col: col, Row: row}
}

// IsPublic reports whether the event may be surfaced to consumers
func (ie InternalEvent) IsPublic() bool {
	return ie.Kind == InternalPublic
}
