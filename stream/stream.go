package stream

import (
	"context"
	"errors"
	"iter"
	"sync"

	"github.com/lixenwraith/termstream/source"
	"github.com/lixenwraith/termstream/terminal"
	"github.com/sirupsen/logrus"
)

var (
	// ErrClosed is returned by Next once the stream is closed and drained
	ErrClosed = errors.New("event stream closed")
	// ErrNilSource is returned by New when no source is given
	ErrNilSource = errors.New("nil event source")
)

// EventStream delivers decoded terminal events from a source.Source
// Producer listeners may fire from any goroutine; Poll, Next and All are
// meant for a single consumer
type EventStream struct {
	src    source.Source
	in     *inbox
	wake   *chanWaker
	prod   *producer
	data   source.Disposable
	resize source.Disposable
	once   sync.Once
}

// New registers a data and a resize listener on src and returns the stream
// fed by them. Registering a second stream on a source that keeps a single
// listener per kind silently detaches the first one.
func New(src source.Source, opts ...Option) (*EventStream, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	o := buildOptions(opts)

	s := &EventStream{
		src:  src,
		in:   newInbox(o.queueCapacity),
		wake: newChanWaker(),
	}
	s.prod = &producer{
		in:     s.in,
		decode: o.decoder,
		log:    o.logger,
		buf:    make([]byte, 0, o.bufferCapacity),
	}
	s.data = src.OnData(s.prod.onData)
	s.resize = src.OnResize(s.prod.onResize)
	return s, nil
}

// Poll makes one non-blocking attempt to produce the next event.
// w is registered as the wake target if none is registered yet; later
// Wakers are ignored. ready=false means the inbox is empty and w (or the
// earlier Waker) will be woken when producers push something. A non-nil
// error is a decode failure for one discarded sequence and is still ready.
func (s *EventStream) Poll(w Waker) (ev terminal.Event, ready bool, err error) {
	it, ok, _ := s.in.take(w)
	if !ok {
		return terminal.Event{}, false, nil
	}
	return it.ev.Event, true, it.err
}

// Next blocks until an event or decode error is available, ctx is done or
// the stream is closed and drained.
// Next parks on the stream's own waker, so it only wakes promptly when no
// other Waker was registered through Poll first.
func (s *EventStream) Next(ctx context.Context) (terminal.Event, error) {
	for {
		it, ok, closed := s.in.take(s.wake)
		if ok {
			if it.err != nil {
				return terminal.Event{}, it.err
			}
			return it.ev.Event, nil
		}
		if closed {
			return terminal.Event{}, ErrClosed
		}

		select {
		case <-ctx.Done():
			return terminal.Event{}, ctx.Err()
		case <-s.wake.ch:
		}
	}
}

// All ranges over events until the stream is closed and drained.
// Decode errors are yielded inline and iteration continues; a done ctx
// yields its error once and ends the sequence.
func (s *EventStream) All(ctx context.Context) iter.Seq2[terminal.Event, error] {
	return func(yield func(terminal.Event, error) bool) {
		for {
			ev, err := s.Next(ctx)
			if errors.Is(err, ErrClosed) {
				return
			}
			if !yield(ev, err) {
				return
			}
			if err != nil && ctx.Err() != nil {
				return
			}
		}
	}
}

// Pending returns the number of raw items queued, internal replies included
func (s *EventStream) Pending() int {
	return s.in.len()
}

// Source returns the source the stream listens on
func (s *EventStream) Source() source.Source {
	return s.src
}

// Close revokes both listeners and wakes the consumer so Next can observe
// closure. Events queued before Close remain available. Idempotent.
func (s *EventStream) Close() error {
	s.once.Do(func() {
		if s.data != nil {
			s.data.Dispose()
		}
		if s.resize != nil {
			s.resize.Dispose()
		}
		if w := s.in.close(); w != nil {
			w.Wake()
		}
	})
	return nil
}

// producer holds the listener closures' state
// buf is the partial-sequence buffer, touched only under mu
type producer struct {
	in     *inbox
	decode terminal.Decoder
	log    logrus.FieldLogger

	mu    sync.Mutex
	buf   []byte
	batch []item
}

// onData decodes chunk byte by byte and pushes everything it completed.
// The waker fires once per chunk, after all locks are released, and only if
// the chunk produced at least one item.
func (p *producer) onData(chunk string) {
	if len(chunk) == 0 {
		return
	}

	p.mu.Lock()
	batch := p.batch[:0]
	for i := 0; i < len(chunk); i++ {
		p.buf = append(p.buf, chunk[i])
		ev, ok, err := p.decode(p.buf, i+1 < len(chunk))
		switch {
		case err != nil:
			p.log.WithError(err).WithField("pending", len(p.buf)).Debug("discarding malformed input")
			batch = append(batch, item{err: err})
			p.buf = p.buf[:0]
		case ok:
			batch = append(batch, item{ev: ev})
			p.buf = p.buf[:0]
		}
	}
	w := p.in.push(batch...)
	clear(batch)
	p.batch = batch[:0]
	p.mu.Unlock()

	if w != nil {
		w.Wake()
	}
}

// onResize enqueues a resize event; the byte buffer is left alone
func (p *producer) onResize(cols, rows int) {
	w := p.in.push(item{ev: terminal.Public(terminal.NewResizeEvent(cols, rows))})
	if w != nil {
		w.Wake()
	}
}
