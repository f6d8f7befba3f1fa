//go:build !js

package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

const defaultReadSize = 4096

// TtyOption configures a TtySource
type TtyOption func(*TtySource)

// WithModes enables terminal reports on Start and disables them on Stop
func WithModes(m Modes) TtyOption {
	return func(s *TtySource) { s.modes = m }
}

// WithLogger sets the logger for read and resize failures
func WithLogger(l logrus.FieldLogger) TtyOption {
	return func(s *TtySource) {
		if l != nil {
			s.log = l
		}
	}
}

// WithReadSize sets the read buffer size, which bounds the chunk length
func WithReadSize(n int) TtyOption {
	return func(s *TtySource) {
		if n > 0 {
			s.readSize = n
		}
	}
}

// TtySource reads raw input from a tcell.Tty on a pump goroutine
// Each successful Read becomes one data chunk; SIGWINCH (via NotifyResize)
// becomes a resize notification carrying the new window size
type TtySource struct {
	listeners

	tty      tcell.Tty
	modes    Modes
	log      logrus.FieldLogger
	readSize int

	mu       sync.Mutex // Serializes Start/Stop
	running  bool
	stopping atomic.Bool
	done     chan struct{}

	errMu sync.Mutex
	err   error // First unexpected read error
}

// NewTtySource wraps tty; the tty is not touched until Start
func NewTtySource(tty tcell.Tty, opts ...TtyOption) *TtySource {
	s := &TtySource{
		tty:      tty,
		log:      noopLogger,
		readSize: defaultReadSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TtySource) OnData(fn func(data string)) Disposable {
	return s.setData(fn)
}

func (s *TtySource) OnResize(fn func(cols, rows int)) Disposable {
	return s.setResize(fn)
}

// Start puts the tty in raw mode, enables the configured reports and
// launches the read pump
func (s *TtySource) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	if err := s.tty.Start(); err != nil {
		return fmt.Errorf("start tty: %w", err)
	}
	if seq := s.modes.enableSeq(); len(seq) > 0 {
		if _, err := s.tty.Write(seq); err != nil {
			s.tty.Stop()
			return fmt.Errorf("enable terminal modes: %w", err)
		}
	}
	s.tty.NotifyResize(s.handleResize)

	s.stopping.Store(false)
	s.done = make(chan struct{})
	s.running = true
	go s.readLoop(s.done)
	return nil
}

// Stop disables reports, wakes the pump and restores the tty
// Safe to call multiple times
func (s *TtySource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false
	s.stopping.Store(true)
	s.tty.NotifyResize(nil)

	if seq := s.modes.disableSeq(); len(seq) > 0 {
		if _, err := s.tty.Write(seq); err != nil {
			s.log.WithError(err).Debug("disable terminal modes")
		}
	}
	if err := s.tty.Drain(); err != nil {
		s.log.WithError(err).Debug("drain tty")
	}
	<-s.done

	if err := s.tty.Stop(); err != nil {
		return fmt.Errorf("stop tty: %w", err)
	}
	return nil
}

// Write sends p to the terminal, e.g. a cursor position query
func (s *TtySource) Write(p []byte) (int, error) {
	return s.tty.Write(p)
}

// Size returns the current window size in cells
func (s *TtySource) Size() (cols, rows int, err error) {
	ws, err := s.tty.WindowSize()
	if err != nil {
		return 0, 0, fmt.Errorf("window size: %w", err)
	}
	return ws.Width, ws.Height, nil
}

// Done is closed when the read pump exits, nil before the first Start
func (s *TtySource) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Err returns the read error that ended the pump, if any
func (s *TtySource) Err() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.err
}

func (s *TtySource) handleResize() {
	cols, rows, err := s.Size()
	if err != nil {
		s.log.WithError(err).Warn("resize notification without size")
		return
	}
	s.emitResize(cols, rows)
}

// readLoop forwards every read to the data listener until Stop or a read error
func (s *TtySource) readLoop(done chan struct{}) {
	defer close(done)

	// Panic recovery for raw input pump
	defer func() {
		if r := recover(); r != nil {
			EmergencyReset(os.Stdout)
			// Use \r\n for clean output in raw mode
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTTY READER CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	buf := make([]byte, s.readSize)
	for {
		n, err := s.tty.Read(buf)
		if n > 0 {
			s.emitData(string(buf[:n]))
		}
		if s.stopping.Load() {
			return
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.log.WithError(err).Warn("tty read failed")
			}
			s.errMu.Lock()
			s.err = err
			s.errMu.Unlock()
			return
		}
	}
}

var (
	_ Source = (*TtySource)(nil)
	_ Sizer  = (*TtySource)(nil)
)
