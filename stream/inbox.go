package stream

import (
	"sync"

	"github.com/lixenwraith/termstream/terminal"
)

// item is one raw inbox entry: a decoded event or a decode failure
type item struct {
	ev  terminal.InternalEvent
	err error
}

// inbox is the FIFO shared by the producer listeners and the consumer
// Thread-Safety:
//   - push: any goroutine, items of one call stay contiguous
//   - take: single consumer; registers the waker and pops atomically
//
// Growth: power-of-two ring, doubles when full, never shrinks
type inbox struct {
	mu     sync.Mutex
	buf    []item
	head   int // Index of the oldest item
	count  int
	waker  Waker // First registered waker, kept for the inbox lifetime
	closed bool  // No more pushes accepted
}

func newInbox(capacity int) *inbox {
	size := 1
	for size < capacity {
		size <<= 1
	}
	return &inbox{buf: make([]item, size)}
}

// push appends items in order and returns the waker to notify once the
// caller has released its own locks, nil when nothing was accepted
func (q *inbox) push(items ...item) Waker {
	if len(items) == 0 {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	for _, it := range items {
		if q.count == len(q.buf) {
			q.grow()
		}
		q.buf[(q.head+q.count)&(len(q.buf)-1)] = it
		q.count++
	}
	return q.waker
}

// grow doubles the ring, unrolling it so head restarts at 0
func (q *inbox) grow() {
	next := make([]item, len(q.buf)*2)
	n := copy(next, q.buf[q.head:])
	copy(next[n:], q.buf[:q.head])
	q.buf = next
	q.head = 0
}

// take registers w if no waker is set yet, then pops until it finds an
// item the consumer may see. Cursor position and other internal replies
// are dropped on the way. ok is false when the inbox ran empty; closed
// reports whether producers have been revoked.
func (q *inbox) take(w Waker) (it item, ok, closed bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.waker == nil && w != nil {
		q.waker = w
	}
	for q.count > 0 {
		it = q.buf[q.head]
		q.buf[q.head] = item{}
		q.head = (q.head + 1) & (len(q.buf) - 1)
		q.count--

		if it.err != nil || it.ev.IsPublic() {
			return it, true, q.closed
		}
	}
	return item{}, false, q.closed
}

// close stops accepting pushes and returns the waker to notify
func (q *inbox) close() Waker {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	q.closed = true
	return q.waker
}

func (q *inbox) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}
