package source

import (
	"errors"
	"sync"
)

var (
	// ErrUnsupported is returned by queries the source cannot answer
	ErrUnsupported = errors.New("query not supported by source")
	// ErrNotTerminal is returned when the input device is not a terminal
	ErrNotTerminal = errors.New("input is not a terminal")
)

// Disposable revokes a listener registration; Dispose is idempotent
type Disposable interface {
	Dispose()
}

// Source pushes raw input and resize notifications to registered listeners
// Data chunks are arbitrary slices of the input byte stream; escape
// sequences and UTF-8 runes may be split across chunks
type Source interface {
	OnData(fn func(data string)) Disposable
	OnResize(fn func(cols, rows int)) Disposable
}

// Sizer is implemented by sources that can report the terminal size
type Sizer interface {
	Size() (cols, rows int, err error)
}

// CursorReporter is implemented by sources that can report the cursor
// position synchronously, zero-indexed from the top-left cell
type CursorReporter interface {
	CursorPosition() (col, row int, err error)
}

// Size queries src for the terminal size
func Size(src Source) (cols, rows int, err error) {
	if s, ok := src.(Sizer); ok {
		return s.Size()
	}
	return 0, 0, ErrUnsupported
}

// CursorPosition queries src for the cursor position
func CursorPosition(src Source) (col, row int, err error) {
	if c, ok := src.(CursorReporter); ok {
		return c.CursorPosition()
	}
	return 0, 0, ErrUnsupported
}

type disposer struct {
	once sync.Once
	fn   func()
}

func (d *disposer) Dispose() {
	d.once.Do(d.fn)
}

// Disposer wraps fn so it runs at most once
func Disposer(fn func()) Disposable {
	return &disposer{fn: fn}
}
