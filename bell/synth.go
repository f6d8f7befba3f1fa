package bell

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave selects an oscillator shape
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// tone is a fixed-length periodic waveform
type tone struct {
	freq   float64
	phase  float64 // [0, 1)
	length int     // Samples
	pos    int
	wave   Wave
	rate   beep.SampleRate
}

func newTone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, length: rate.N(d), wave: wave, rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.length {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.length {
			return i, true
		}

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2*t.phase - 1
		}
		samples[i] = [2]float64{v, v}

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// fade applies a linear attack and release to a fixed-length streamer
type fade struct {
	s       beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

func newFade(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	f := &fade{s: s, total: rate.N(d), attack: rate.N(attack), release: rate.N(release)}
	if f.attack+f.release > f.total {
		f.attack, f.release = f.total/2, f.total-f.total/2
	}
	return f
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.s.Stream(samples)
	releaseAt := f.total - f.release
	for i := 0; i < n; i++ {
		gain := 1.0
		switch {
		case f.pos < f.attack:
			gain = float64(f.pos) / float64(f.attack)
		case f.pos >= releaseAt && f.release > 0:
			gain = float64(f.total-f.pos) / float64(f.release)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

// withVolume scales s linearly; beep's Volume works in log2 steps, and
// zero maps to Silent since log2(0) is -Inf
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Sound names a synthesized alert
type Sound int

const (
	// SoundError is a short saw buzz at Config.Frequency
	SoundError Sound = iota
	// SoundBell is a sine ding with an octave overtone
	SoundBell
)

// Streamer synthesizes s for cfg
func Streamer(s Sound, cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := cfg.Duration
	attack := d / 16

	switch s {
	case SoundBell:
		fund := newFade(newTone(880, d, WaveSine, rate), d, attack, d/2, rate)
		over := newFade(newTone(1760, d, WaveSine, rate), d, attack, d/4, rate)
		return withVolume(beep.Mix(withVolume(fund, 0.7), withVolume(over, 0.3)), cfg.Volume)
	default:
		buzz := newFade(newTone(cfg.Frequency, d, WaveSaw, rate), d, attack, d/4, rate)
		return withVolume(buzz, cfg.Volume)
	}
}

// pcmFormat is what every detected player is told to expect
func pcmFormat(rate int) beep.Format {
	return beep.Format{SampleRate: beep.SampleRate(rate), NumChannels: 2, Precision: 2}
}

// Render drains s into interleaved PCM for format f
func Render(s beep.Streamer, f beep.Format) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	frame := make([]byte, f.Width())
	for {
		n, ok := s.Stream(buf)
		for _, sample := range buf[:n] {
			f.EncodeSigned(frame, sample)
			out = append(out, frame...)
		}
		if !ok || n == 0 {
			return out
		}
	}
}
