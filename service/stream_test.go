package service

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/termstream/source"
	"github.com/lixenwraith/termstream/stream"
	"github.com/lixenwraith/termstream/terminal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startableEmitter records Start/Stop calls the service makes on its source
type startableEmitter struct {
	*source.Emitter
	started, stopped int
}

func (e *startableEmitter) Start() error { e.started++; return nil }
func (e *startableEmitter) Stop() error  { e.stopped++; return nil }

func recvMessage(t *testing.T, ch <-chan Message) Message {
	t.Helper()
	select {
	case m, ok := <-ch:
		require.True(t, ok, "events channel closed")
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}

func TestStreamService_PumpsEvents(t *testing.T) {
	src := &startableEmitter{Emitter: source.NewEmitter(80, 24)}
	svc := NewStreamService(func() (source.Source, error) { return src, nil })

	require.NoError(t, svc.Init())
	require.NoError(t, svc.Start())
	assert.Equal(t, 1, src.started)
	assert.Same(t, src, svc.Source())

	src.EmitData("a\xff")
	src.Resize(90, 30)

	m := recvMessage(t, svc.Events())
	require.NoError(t, m.Err)
	assert.Equal(t, 'a', m.Event.Rune)

	m = recvMessage(t, svc.Events())
	assert.ErrorIs(t, m.Err, terminal.ErrMalformed)

	m = recvMessage(t, svc.Events())
	assert.Equal(t, terminal.NewResizeEvent(90, 30), m.Event)

	require.NoError(t, svc.Stop())
	require.NoError(t, svc.Stop())
	assert.Equal(t, 1, src.stopped)

	_, ok := <-svc.Events()
	assert.False(t, ok, "events channel closes after Stop")
}

func TestStreamService_InitArgs(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	em := source.NewEmitter(80, 24)
	svc := NewStreamService(func() (source.Source, error) { return em, nil })
	require.NoError(t, svc.Init(logger, stream.WithQueueCapacity(4), 42))
	require.NotNil(t, svc.Stream())

	em.EmitData("\x1b[\x01")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "discarding malformed input", hook.LastEntry().Message)
	assert.Equal(t, 1, svc.Stream().Pending())
	require.NoError(t, svc.Stop())
}

func TestStreamService_FactoryError(t *testing.T) {
	boom := errors.New("no tty")
	svc := NewStreamService(func() (source.Source, error) { return nil, boom })
	assert.ErrorIs(t, svc.Init(), boom)
	assert.Error(t, svc.Start())
	assert.NoError(t, svc.Stop())
}

func TestStreamService_NilFactory(t *testing.T) {
	svc := NewStreamService(nil)
	assert.ErrorIs(t, svc.Init(), stream.ErrNilSource)
}

func TestStreamService_InHub(t *testing.T) {
	em := source.NewEmitter(80, 24)
	h := NewHub(nil)
	require.NoError(t, h.Register(NewStreamService(func() (source.Source, error) { return em, nil })))
	require.NoError(t, h.InitAll())
	require.NoError(t, h.StartAll())

	svc := MustGet[*StreamService](h, StreamName)
	em.EmitData("\x1b[1;5A")
	m := recvMessage(t, svc.Events())
	assert.Equal(t, terminal.NewKeyEvent(terminal.KeyUp, terminal.ModCtrl), m.Event)

	h.StopAll()
	_, ok := <-svc.Events()
	assert.False(t, ok)
}
