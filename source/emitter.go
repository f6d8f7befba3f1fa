package source

import "sync"

// Emitter is an in-memory Source driven by the caller
// Safe for concurrent use; listeners run on the calling goroutine
type Emitter struct {
	listeners

	sizeMu sync.Mutex
	cols   int
	rows   int
}

// NewEmitter returns an Emitter reporting the given initial size
func NewEmitter(cols, rows int) *Emitter {
	return &Emitter{cols: cols, rows: rows}
}

func (e *Emitter) OnData(fn func(data string)) Disposable {
	return e.setData(fn)
}

func (e *Emitter) OnResize(fn func(cols, rows int)) Disposable {
	return e.setResize(fn)
}

// EmitData delivers one chunk; false means no data listener is registered
func (e *Emitter) EmitData(data string) bool {
	return e.emitData(data)
}

// Write delivers p as one chunk, so an Emitter can sit behind io.Copy
func (e *Emitter) Write(p []byte) (int, error) {
	e.emitData(string(p))
	return len(p), nil
}

// Resize records the new size and notifies the resize listener
func (e *Emitter) Resize(cols, rows int) bool {
	e.sizeMu.Lock()
	e.cols, e.rows = cols, rows
	e.sizeMu.Unlock()
	return e.emitResize(cols, rows)
}

func (e *Emitter) Size() (cols, rows int, err error) {
	e.sizeMu.Lock()
	defer e.sizeMu.Unlock()
	return e.cols, e.rows, nil
}

// Listening reports which listener slots are occupied
func (e *Emitter) Listening() (data, resize bool) {
	return e.active()
}

var (
	_ Source = (*Emitter)(nil)
	_ Sizer  = (*Emitter)(nil)
)
