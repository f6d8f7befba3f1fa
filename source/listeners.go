package source

import "sync"

// listeners is the single-slot registry shared by all sources
// Each registration bumps a generation; a stale Dispose is a no-op
type listeners struct {
	mu        sync.Mutex
	data      func(string)
	dataGen   uint64
	resize    func(cols, rows int)
	resizeGen uint64
}

func (l *listeners) setData(fn func(string)) Disposable {
	l.mu.Lock()
	l.dataGen++
	gen := l.dataGen
	l.data = fn
	l.mu.Unlock()

	return Disposer(func() {
		l.mu.Lock()
		if l.dataGen == gen {
			l.data = nil
		}
		l.mu.Unlock()
	})
}

func (l *listeners) setResize(fn func(cols, rows int)) Disposable {
	l.mu.Lock()
	l.resizeGen++
	gen := l.resizeGen
	l.resize = fn
	l.mu.Unlock()

	return Disposer(func() {
		l.mu.Lock()
		if l.resizeGen == gen {
			l.resize = nil
		}
		l.mu.Unlock()
	})
}

// emitData calls the data listener outside the lock, reporting whether one was set
func (l *listeners) emitData(s string) bool {
	l.mu.Lock()
	fn := l.data
	l.mu.Unlock()
	if fn == nil {
		return false
	}
	fn(s)
	return true
}

func (l *listeners) emitResize(cols, rows int) bool {
	l.mu.Lock()
	fn := l.resize
	l.mu.Unlock()
	if fn == nil {
		return false
	}
	fn(cols, rows)
	return true
}

func (l *listeners) active() (data, resize bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.data != nil, l.resize != nil
}
