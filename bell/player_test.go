package bell

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/termstream/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Len()
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

// fakeClock is advanced manually
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestPlayer_RingWritesPCM(t *testing.T) {
	out := &syncBuffer{}
	clock := &fakeClock{t: time.Unix(1000, 0)}
	p, err := NewPlayer(testConfig(), WithOutput(out), WithClock(clock.Now))
	require.NoError(t, err)
	require.NoError(t, p.Start())

	assert.True(t, p.Ring(SoundError))
	require.Eventually(t, func() bool {
		played, _ := p.Stats()
		return played == 1
	}, time.Second, 5*time.Millisecond)

	p.Stop()
	assert.Equal(t, len(p.pcm[SoundError]), out.Len())
	assert.Nil(t, p.Backend())
}

func TestPlayer_MinGapDropsRings(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	cfg := testConfig()
	cfg.MinGap = 100 * time.Millisecond
	p, err := NewPlayer(cfg, WithOutput(&syncBuffer{}), WithClock(clock.Now))
	require.NoError(t, err)
	require.NoError(t, p.Start())
	defer p.Stop()

	assert.True(t, p.Ring(SoundBell))
	assert.False(t, p.Ring(SoundBell), "within min gap")
	clock.Advance(150 * time.Millisecond)
	assert.True(t, p.Ring(SoundError))

	_, dropped := p.Stats()
	assert.EqualValues(t, 1, dropped)
}

func TestPlayer_DisabledNeverRings(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	p, err := NewPlayer(cfg, WithOutput(&syncBuffer{}))
	require.NoError(t, err)
	require.NoError(t, p.Start())
	defer p.Stop()

	assert.False(t, p.Ring(SoundError))
}

func TestPlayer_NotStarted(t *testing.T) {
	p, err := NewPlayer(testConfig(), WithOutput(&syncBuffer{}))
	require.NoError(t, err)
	assert.False(t, p.Ring(SoundError))
	p.Stop() // no-op
}

func TestPlayer_WriteFailureGoesSilent(t *testing.T) {
	p, err := NewPlayer(testConfig(), WithOutput(failWriter{}))
	require.NoError(t, err)
	require.NoError(t, p.Start())
	defer p.Stop()

	p.Ring(SoundError)
	require.Eventually(t, func() bool { return p.silent.Load() }, time.Second, 5*time.Millisecond)
	assert.False(t, p.Ring(SoundError))
}

func TestPlayer_NoBackendIsSilent(t *testing.T) {
	orig := lookPath
	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	defer func() { lookPath = orig }()

	p, err := NewPlayer(testConfig())
	require.NoError(t, err)
	require.NoError(t, p.Start(), "missing player is not an error")
	defer p.Stop()

	assert.False(t, p.Ring(SoundError))
	assert.Error(t, p.Start(), "already running")
}

func TestNewPlayer_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Volume = -1
	_, err := NewPlayer(cfg)
	assert.Error(t, err)
}

func TestDetectBackend_Preference(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()

	available := map[string]bool{"aplay": true, "ffplay": true}
	lookPath = func(name string) (string, error) {
		if available[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}

	b, err := DetectBackend(48000)
	require.NoError(t, err)
	assert.Equal(t, "aplay", b.Name)
	assert.Equal(t, "/usr/bin/aplay", b.Path)
	assert.Contains(t, b.Args, "48000")

	available = map[string]bool{}
	_, err = DetectBackend(48000)
	assert.ErrorIs(t, err, ErrNoPlayer)
}

func TestService_Lifecycle(t *testing.T) {
	var _ service.Service = (*Service)(nil)

	out := &syncBuffer{}
	svc := NewService(DefaultConfig(), WithOutput(out))
	assert.False(t, svc.Ring(SoundError), "nil player before Init")

	require.NoError(t, svc.Init(testConfig()))
	require.NoError(t, svc.Start())
	assert.True(t, svc.Ring(SoundBell))
	require.NoError(t, svc.Stop())
	require.NoError(t, svc.Stop())

	played, _ := svc.Player().Stats()
	assert.EqualValues(t, 1, played)
	assert.Equal(t, len(svc.Player().pcm[SoundBell]), out.Len())
}
