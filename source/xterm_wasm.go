//go:build js && wasm

package source

import (
	"syscall/js"
)

// XtermSource adapts an xterm.js Terminal object
// xterm.js keeps its own listener list, so unlike the other sources several
// registrations coexist; each Dispose removes only its own
type XtermSource struct {
	term js.Value
}

// NewXtermSource wraps an xterm.js Terminal instance
func NewXtermSource(term js.Value) *XtermSource {
	return &XtermSource{term: term}
}

func (x *XtermSource) OnData(fn func(data string)) Disposable {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 {
			fn(args[0].String())
		}
		return nil
	})
	return x.subscribe("onData", cb)
}

func (x *XtermSource) OnResize(fn func(cols, rows int)) Disposable {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 {
			fn(args[0].Get("cols").Int(), args[0].Get("rows").Int())
		}
		return nil
	})
	return x.subscribe("onResize", cb)
}

// subscribe registers cb with an xterm.js event and releases it on Dispose
func (x *XtermSource) subscribe(event string, cb js.Func) Disposable {
	reg := x.term.Call(event, cb)
	return Disposer(func() {
		reg.Call("dispose")
		cb.Release()
	})
}

func (x *XtermSource) Size() (cols, rows int, err error) {
	return x.term.Get("cols").Int(), x.term.Get("rows").Int(), nil
}

// CursorPosition reads the active buffer's cursor, zero-indexed
func (x *XtermSource) CursorPosition() (col, row int, err error) {
	buf := x.term.Get("buffer").Get("active")
	if buf.IsUndefined() {
		return 0, 0, ErrUnsupported
	}
	return buf.Get("cursorX").Int(), buf.Get("cursorY").Int(), nil
}

var (
	_ Source         = (*XtermSource)(nil)
	_ Sizer          = (*XtermSource)(nil)
	_ CursorReporter = (*XtermSource)(nil)
)
