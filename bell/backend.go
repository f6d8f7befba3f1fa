package bell

import (
	"errors"
	"os/exec"
	"strconv"
)

// ErrNoPlayer is returned when no supported audio player is on PATH
var ErrNoPlayer = errors.New("no audio player found")

// Backend is an external player reading raw s16le stereo PCM from stdin
type Backend struct {
	Name string
	Path string
	Args []string
}

// players lists candidates by preference with their command line builders
var players = []struct {
	name string
	args func(rate string) []string
}{
	{"pacat", func(r string) []string {
		return []string{"--raw", "--format=s16le", "--rate=" + r, "--channels=2", "--latency-msec=50", "--playback"}
	}},
	{"pw-cat", func(r string) []string {
		return []string{"--playback", "--format=s16", "--rate=" + r, "--channels=2", "--latency=50ms", "-"}
	}},
	{"aplay", func(r string) []string {
		return []string{"-t", "raw", "-f", "S16_LE", "-r", r, "-c", "2", "-q"}
	}},
	{"play", func(r string) []string {
		return []string{"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", r, "-", "-d", "-q"}
	}},
	{"ffplay", func(r string) []string {
		return []string{"-nodisp", "-autoexit", "-f", "s16le", "-ac", "2", "-ar", r,
			"-probesize", "32", "-analyzeduration", "0", "-i", "pipe:0", "-loglevel", "quiet"}
	}},
}

// lookPath is swapped in tests
var lookPath = exec.LookPath

// DetectBackend returns the first available player configured for rate
func DetectBackend(rate int) (*Backend, error) {
	r := strconv.Itoa(rate)
	for _, p := range players {
		path, err := lookPath(p.name)
		if err != nil {
			continue
		}
		return &Backend{Name: p.name, Path: path, Args: p.args(r)}, nil
	}
	return nil, ErrNoPlayer
}
