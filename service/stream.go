package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/lixenwraith/termstream/source"
	"github.com/lixenwraith/termstream/stream"
	"github.com/lixenwraith/termstream/terminal"
	"github.com/sirupsen/logrus"
)

// StreamName is the hub name of StreamService
const StreamName = "stream"

const defaultEventBuffer = 256

// Message is one stream result delivered on the Events channel
// Err is a decode error for a discarded sequence; Event is zero then
type Message struct {
	Event terminal.Event
	Err   error
}

// SourceFactory builds the input source during Init
type SourceFactory func() (source.Source, error)

// starter and stopper are implemented by sources with their own pump
type starter interface{ Start() error }
type stopper interface{ Stop() error }

// StreamService owns a source and its EventStream and pumps events onto a
// channel for callers that prefer select loops over Next
// A stopped StreamService cannot be restarted
type StreamService struct {
	factory SourceFactory
	opts    []stream.Option
	log     logrus.FieldLogger

	src    source.Source
	stream *stream.EventStream
	events chan Message
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	running bool
	stopped bool
}

// NewStreamService creates a service whose source comes from factory
func NewStreamService(factory SourceFactory, opts ...stream.Option) *StreamService {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &StreamService{
		factory: factory,
		opts:    opts,
		log:     l,
		events:  make(chan Message, defaultEventBuffer),
	}
}

// Name implements Service
func (s *StreamService) Name() string {
	return StreamName
}

// Dependencies implements Service
func (s *StreamService) Dependencies() []string {
	return nil
}

// Init implements Service
// Recognized args: logrus.FieldLogger, stream.Option; others are ignored
func (s *StreamService) Init(args ...any) error {
	for _, arg := range args {
		switch a := arg.(type) {
		case logrus.FieldLogger:
			s.log = a
			s.opts = append(s.opts, stream.WithLogger(a))
		case stream.Option:
			s.opts = append(s.opts, a)
		}
	}

	if s.factory == nil {
		return stream.ErrNilSource
	}
	src, err := s.factory()
	if err != nil {
		return fmt.Errorf("create source: %w", err)
	}
	st, err := stream.New(src, s.opts...)
	if err != nil {
		return err
	}
	s.src = src
	s.stream = st
	return nil
}

// Start implements Service - starts the source pump, then the event pump
func (s *StreamService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	if s.stream == nil || s.stopped {
		return fmt.Errorf("stream service not initialized")
	}

	if st, ok := s.src.(starter); ok {
		if err := st.Start(); err != nil {
			return fmt.Errorf("start source: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true
	go s.pumpLoop(ctx, s.done)
	return nil
}

// pumpLoop forwards stream results until the stream is closed and drained
func (s *StreamService) pumpLoop(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer close(s.events)

	defer func() {
		if r := recover(); r != nil {
			source.EmergencyReset(os.Stdout)
			os.Stdout.Sync()
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT PUMP CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Stderr.Sync()
			os.Exit(1)
		}
	}()

	s.log.Debug("event pump started")
	defer s.log.Debug("event pump stopped")

	for ev, err := range s.stream.All(ctx) {
		if err != nil && ctx.Err() != nil {
			return
		}
		select {
		case s.events <- Message{Event: ev, Err: err}:
		case <-ctx.Done():
			return
		}
	}
}

// Stop implements Service - closes the stream, stops the source and waits
// for the pump; events not yet delivered are dropped
func (s *StreamService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil
	}
	s.stopped = true

	if s.stream != nil {
		s.stream.Close()
	}

	var err error
	if s.running {
		if sp, ok := s.src.(stopper); ok {
			if e := sp.Stop(); e != nil {
				err = fmt.Errorf("stop source: %w", e)
			}
		}
		s.cancel()
		<-s.done
		s.running = false
	}
	return err
}

// Events returns the result channel, closed once the pump ends
func (s *StreamService) Events() <-chan Message {
	return s.events
}

// Stream returns the underlying stream, nil before Init
func (s *StreamService) Stream() *stream.EventStream {
	return s.stream
}

// Source returns the source built by the factory, nil before Init
func (s *StreamService) Source() source.Source {
	return s.src
}
