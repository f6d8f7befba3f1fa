package bell

import (
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const queueSize = 4

// Player rings pre-rendered sounds through a backend process
// Ring never blocks: sounds are dropped while the queue is full, within
// MinGap of the previous ring, or when no player could be started
type Player struct {
	cfg Config
	log logrus.FieldLogger
	now func() time.Time
	out io.Writer // Fixed sink, bypasses backend detection

	pcm map[Sound][]byte

	backend *Backend
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	queue   chan []byte
	wg      sync.WaitGroup

	mu       sync.Mutex // Protects lastRing, queue send vs close
	lastRing time.Time

	running atomic.Bool
	silent  atomic.Bool
	played  atomic.Uint64
	dropped atomic.Uint64
}

// PlayerOption configures a Player
type PlayerOption func(*Player)

// WithOutput writes PCM to w instead of a detected player process
func WithOutput(w io.Writer) PlayerOption {
	return func(p *Player) { p.out = w }
}

// WithLogger sets the logger for backend failures
func WithLogger(l logrus.FieldLogger) PlayerOption {
	return func(p *Player) {
		if l != nil {
			p.log = l
		}
	}
}

// WithClock replaces time.Now for rate limiting
func WithClock(now func() time.Time) PlayerOption {
	return func(p *Player) { p.now = now }
}

// NewPlayer renders every Sound for cfg up front
func NewPlayer(cfg Config, opts ...PlayerOption) (*Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Player{
		cfg: cfg,
		log: noopLogger,
		now: time.Now,
		pcm: make(map[Sound][]byte, 2),
	}
	for _, opt := range opts {
		opt(p)
	}

	f := pcmFormat(cfg.SampleRate)
	for _, s := range []Sound{SoundError, SoundBell} {
		p.pcm[s] = Render(Streamer(s, cfg), f)
	}
	return p, nil
}

// Start launches the player process and the writer goroutine
// A missing or failing player leaves the bell silent without error
func (p *Player) Start() error {
	if p.running.Load() {
		return fmt.Errorf("bell player already running")
	}

	w := p.out
	if w == nil {
		backend, err := DetectBackend(p.cfg.SampleRate)
		if err != nil {
			p.log.WithError(err).Info("bell disabled")
			p.silent.Store(true)
			p.running.Store(true)
			return nil
		}
		cmd := exec.Command(backend.Path, backend.Args...)
		stdin, err := cmd.StdinPipe()
		if err == nil {
			err = cmd.Start()
		}
		if err != nil {
			p.log.WithError(err).WithField("player", backend.Name).Warn("bell player failed to start")
			p.silent.Store(true)
			p.running.Store(true)
			return nil
		}
		p.backend, p.cmd, p.stdin = backend, cmd, stdin
		w = stdin

		p.wg.Add(1)
		go p.watchProcess()
	}

	p.queue = make(chan []byte, queueSize)
	p.wg.Add(1)
	go p.writeLoop(w, p.queue)
	p.running.Store(true)
	return nil
}

// Ring queues s, reporting whether it will be played
func (p *Player) Ring(s Sound) bool {
	if !p.cfg.Enabled || !p.running.Load() || p.silent.Load() {
		return false
	}
	pcm, ok := p.pcm[s]
	if !ok {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.queue == nil {
		return false
	}
	now := p.now()
	if !p.lastRing.IsZero() && now.Sub(p.lastRing) < p.cfg.MinGap {
		p.dropped.Add(1)
		return false
	}

	select {
	case p.queue <- pcm:
		p.lastRing = now
		return true
	default:
		p.dropped.Add(1)
		return false
	}
}

// Stop ends the writer and the player process; idempotent
func (p *Player) Stop() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}

	p.mu.Lock()
	if p.queue != nil {
		close(p.queue)
		p.queue = nil
	}
	p.mu.Unlock()

	if p.stdin != nil {
		p.stdin.Close()
	}
	if p.cmd != nil && p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
	p.wg.Wait()
}

// Backend returns the detected player, nil when silent or using WithOutput
func (p *Player) Backend() *Backend {
	return p.backend
}

// Stats returns rings written to the player and rings dropped
func (p *Player) Stats() (played, dropped uint64) {
	return p.played.Load(), p.dropped.Load()
}

func (p *Player) writeLoop(w io.Writer, queue <-chan []byte) {
	defer p.wg.Done()
	for pcm := range queue {
		if p.silent.Load() {
			continue
		}
		if _, err := w.Write(pcm); err != nil {
			p.log.WithError(err).Warn("bell write failed, going silent")
			p.silent.Store(true)
			continue
		}
		p.played.Add(1)
	}
}

// watchProcess marks the bell silent if the player exits early
func (p *Player) watchProcess() {
	defer p.wg.Done()
	err := p.cmd.Wait()
	if p.running.Load() {
		p.log.WithError(err).Warn("bell player exited")
		p.silent.Store(true)
	}
}
