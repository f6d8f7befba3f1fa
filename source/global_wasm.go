//go:build js && wasm

package source

import (
	"sync"
	"syscall/js"
)

const (
	globalInputFunc  = "goTerminalInput"
	globalResizeFunc = "goTerminalResize"
)

// GlobalSource exposes goTerminalInput(data) and goTerminalResize(cols, rows)
// on the JS global object for pages that forward terminal events themselves.
// data may be a string or a Uint8Array
type GlobalSource struct {
	listeners

	funcs []js.Func

	sizeMu sync.Mutex
	cols   int
	rows   int
}

// NewGlobalSource installs the global hooks; Close removes them
func NewGlobalSource() *GlobalSource {
	g := &GlobalSource{cols: 80, rows: 24}

	input := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		v := args[0]
		if v.Type() == js.TypeString {
			g.emitData(v.String())
			return nil
		}
		data := make([]byte, v.Length())
		js.CopyBytesToGo(data, v)
		g.emitData(string(data))
		return nil
	})
	resize := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) >= 2 {
			cols, rows := args[0].Int(), args[1].Int()
			g.sizeMu.Lock()
			g.cols, g.rows = cols, rows
			g.sizeMu.Unlock()
			g.emitResize(cols, rows)
		}
		return nil
	})
	g.funcs = append(g.funcs, input, resize)
	js.Global().Set(globalInputFunc, input)
	js.Global().Set(globalResizeFunc, resize)

	// Initial size from a page-level xterm instance, if any
	if xterm := js.Global().Get("xterm"); !xterm.IsUndefined() {
		g.cols = xterm.Get("cols").Int()
		g.rows = xterm.Get("rows").Int()
	}
	return g
}

func (g *GlobalSource) OnData(fn func(data string)) Disposable {
	return g.setData(fn)
}

func (g *GlobalSource) OnResize(fn func(cols, rows int)) Disposable {
	return g.setResize(fn)
}

func (g *GlobalSource) Size() (cols, rows int, err error) {
	g.sizeMu.Lock()
	defer g.sizeMu.Unlock()
	return g.cols, g.rows, nil
}

// Close removes the global hooks and releases their callbacks
func (g *GlobalSource) Close() error {
	js.Global().Delete(globalInputFunc)
	js.Global().Delete(globalResizeFunc)
	for _, f := range g.funcs {
		f.Release()
	}
	g.funcs = nil
	return nil
}

var (
	_ Source = (*GlobalSource)(nil)
	_ Sizer  = (*GlobalSource)(nil)
)
