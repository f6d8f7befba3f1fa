package stream

// Waker resumes a suspended consumer
// Wake must not block; it may be called from any goroutine
type Waker interface {
	Wake()
}

// WakerFunc adapts a plain function to Waker
type WakerFunc func()

func (f WakerFunc) Wake() { f() }

// chanWaker coalesces wakes into at most one pending signal
type chanWaker struct {
	ch chan struct{}
}

func newChanWaker() *chanWaker {
	return &chanWaker{ch: make(chan struct{}, 1)}
}

// Wake never blocks; a signal already pending absorbs this one
func (w *chanWaker) Wake() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}
