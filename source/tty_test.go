//go:build !js

package source

import (
	"bytes"
	"errors"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTty feeds reads from a channel; Drain unblocks Read with a deadline error
type fakeTty struct {
	mu      sync.Mutex
	reads   chan []byte
	drained chan struct{}
	out     bytes.Buffer
	cb      func()
	size    tcell.WindowSize
	sizeErr error
	started int
	stopped int
	readErr error
}

func newFakeTty() *fakeTty {
	return &fakeTty{
		reads:   make(chan []byte, 16),
		drained: make(chan struct{}),
		size:    tcell.WindowSize{Width: 80, Height: 24},
	}
}

func (f *fakeTty) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started++
	return nil
}

func (f *fakeTty) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped++
	return nil
}

func (f *fakeTty) Drain() error {
	close(f.drained)
	return nil
}

func (f *fakeTty) NotifyResize(cb func()) {
	f.mu.Lock()
	f.cb = cb
	f.mu.Unlock()
}

func (f *fakeTty) WindowSize() (tcell.WindowSize, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.size, f.sizeErr
}

func (f *fakeTty) Read(b []byte) (int, error) {
	select {
	case data, ok := <-f.reads:
		if !ok {
			return 0, f.readErr
		}
		return copy(b, data), nil
	case <-f.drained:
		return 0, os.ErrDeadlineExceeded
	}
}

func (f *fakeTty) Write(b []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.Write(b)
}

func (f *fakeTty) Close() error { return nil }

func (f *fakeTty) resize(cols, rows int) {
	f.mu.Lock()
	f.size = tcell.WindowSize{Width: cols, Height: rows}
	cb := f.cb
	f.mu.Unlock()
	if cb != nil {
		cb()
	}
}

func (f *fakeTty) written() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.String()
}

var _ tcell.Tty = (*fakeTty)(nil)

func TestTtySource_ForwardsReadsAsChunks(t *testing.T) {
	tty := newFakeTty()
	src := NewTtySource(tty)

	chunks := make(chan string, 4)
	src.OnData(func(s string) { chunks <- s })

	require.NoError(t, src.Start())
	tty.reads <- []byte("\x1b[")
	tty.reads <- []byte("A")

	assert.Equal(t, "\x1b[", recvString(t, chunks))
	assert.Equal(t, "A", recvString(t, chunks))

	require.NoError(t, src.Stop())
	assert.NoError(t, src.Err())
}

func TestTtySource_ResizeUsesWindowSize(t *testing.T) {
	tty := newFakeTty()
	src := NewTtySource(tty)

	sizes := make(chan [2]int, 1)
	src.OnResize(func(c, r int) { sizes <- [2]int{c, r} })
	require.NoError(t, src.Start())
	defer src.Stop()

	tty.resize(132, 43)
	select {
	case got := <-sizes:
		assert.Equal(t, [2]int{132, 43}, got)
	case <-time.After(time.Second):
		t.Fatal("no resize delivered")
	}

	cols, rows, err := Size(src)
	require.NoError(t, err)
	assert.Equal(t, 132, cols)
	assert.Equal(t, 43, rows)
}

func TestTtySource_ResizeSizeErrorIsDropped(t *testing.T) {
	tty := newFakeTty()
	tty.sizeErr = errors.New("ioctl failed")
	src := NewTtySource(tty)

	called := false
	src.OnResize(func(int, int) { called = true })
	src.handleResize()
	assert.False(t, called)

	_, _, err := src.Size()
	assert.ErrorIs(t, err, tty.sizeErr)
}

func TestTtySource_ModesToggledOnStartStop(t *testing.T) {
	tty := newFakeTty()
	src := NewTtySource(tty, WithModes(Modes{Focus: true, Paste: true}))

	require.NoError(t, src.Start())
	assert.Equal(t, "\x1b[?1004h\x1b[?2004h", tty.written())

	require.NoError(t, src.Stop())
	assert.Equal(t, "\x1b[?1004h\x1b[?2004h\x1b[?2004l\x1b[?1004l", tty.written())
}

func TestTtySource_StartStopIdempotent(t *testing.T) {
	tty := newFakeTty()
	src := NewTtySource(tty)

	require.NoError(t, src.Start())
	require.NoError(t, src.Start())
	require.NoError(t, src.Stop())
	require.NoError(t, src.Stop())

	assert.Equal(t, 1, tty.started)
	assert.Equal(t, 1, tty.stopped)

	tty.mu.Lock()
	assert.Nil(t, tty.cb, "resize hook must be unregistered")
	tty.mu.Unlock()
}

func TestTtySource_ReadErrorEndsPump(t *testing.T) {
	tty := newFakeTty()
	tty.readErr = io.EOF
	src := NewTtySource(tty)
	require.NoError(t, src.Start())

	close(tty.reads)
	select {
	case <-src.Done():
	case <-time.After(time.Second):
		t.Fatal("pump did not exit")
	}
	assert.ErrorIs(t, src.Err(), io.EOF)

	require.NoError(t, src.Stop())
}

func TestTtySource_WriteReachesTerminal(t *testing.T) {
	tty := newFakeTty()
	src := NewTtySource(tty)
	_, err := src.Write([]byte("\x1b[6n"))
	require.NoError(t, err)
	assert.Equal(t, "\x1b[6n", tty.written())
}

func recvString(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for chunk")
		return ""
	}
}
