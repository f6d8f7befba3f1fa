// Package config loads termstream settings from defaults, an optional YAML
// file and TERMSTREAM_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/lixenwraith/termstream/bell"
	"github.com/lixenwraith/termstream/source"
	"github.com/lixenwraith/termstream/stream"
	"github.com/lixenwraith/termstream/terminal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "TERMSTREAM_"

// Config is the full application configuration
type Config struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	LogDir   string `yaml:"log_dir" env:"LOG_DIR"`
	Debug    bool   `yaml:"debug" env:"DEBUG"`
	QuitKey  string `yaml:"quit_key" env:"QUIT_KEY"` // Key name, see terminal.KeyByName

	Stream   StreamConfig   `yaml:"stream" envPrefix:"STREAM_"`
	Terminal TerminalConfig `yaml:"terminal" envPrefix:"TERMINAL_"`
	Bell     bell.Config    `yaml:"bell" envPrefix:"BELL_"`
}

// StreamConfig sizes the event stream buffers
type StreamConfig struct {
	QueueCapacity  int `yaml:"queue_capacity" env:"QUEUE_CAPACITY"`
	BufferCapacity int `yaml:"buffer_capacity" env:"BUFFER_CAPACITY"`
}

// TerminalConfig selects optional terminal reports and the read size
type TerminalConfig struct {
	Mouse    bool `yaml:"mouse" env:"MOUSE"`
	Focus    bool `yaml:"focus" env:"FOCUS"`
	Paste    bool `yaml:"paste" env:"PASTE"`
	ReadSize int  `yaml:"read_size" env:"READ_SIZE"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		LogLevel: "info",
		LogDir:   "logs",
		QuitKey:  "ctrl_q",
		Stream: StreamConfig{
			QueueCapacity:  stream.DefaultQueueCapacity,
			BufferCapacity: stream.DefaultBufferCapacity,
		},
		Terminal: TerminalConfig{
			Focus:    true,
			Paste:    true,
			ReadSize: 4096,
		},
		Bell: bell.DefaultConfig(),
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the process environment
func Load(path string) (Config, error) {
	return load(path, nil)
}

// load is Load with an explicit environment; nil means os.Environ
func load(path string, environ map[string]string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("config env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

// Validate checks ranges and that names resolve
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.QuitKey != "" {
		if _, ok := terminal.KeyByName(c.QuitKey); !ok {
			return fmt.Errorf("quit_key: unknown key name %q", c.QuitKey)
		}
	}
	if c.Stream.QueueCapacity <= 0 {
		return fmt.Errorf("stream.queue_capacity must be positive, got %d", c.Stream.QueueCapacity)
	}
	if c.Stream.BufferCapacity <= 0 {
		return fmt.Errorf("stream.buffer_capacity must be positive, got %d", c.Stream.BufferCapacity)
	}
	if c.Terminal.ReadSize <= 0 {
		return fmt.Errorf("terminal.read_size must be positive, got %d", c.Terminal.ReadSize)
	}
	if err := c.Bell.Validate(); err != nil {
		return fmt.Errorf("bell: %w", err)
	}
	return nil
}

// Level returns the logrus level, debug when Debug is set
func (c Config) Level() logrus.Level {
	if c.Debug {
		return logrus.DebugLevel
	}
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Quit resolves QuitKey; ok is false when no quit key is configured
func (c Config) Quit() (key terminal.Key, ok bool) {
	if c.QuitKey == "" {
		return terminal.KeyNone, false
	}
	return terminal.KeyByName(c.QuitKey)
}

// StreamOptions converts the stream section into stream options
func (c Config) StreamOptions() []stream.Option {
	return []stream.Option{
		stream.WithQueueCapacity(c.Stream.QueueCapacity),
		stream.WithBufferCapacity(c.Stream.BufferCapacity),
	}
}

// Modes converts the terminal section into source reporting modes
func (c Config) Modes() source.Modes {
	return source.Modes{Mouse: c.Terminal.Mouse, Focus: c.Terminal.Focus, Paste: c.Terminal.Paste}
}
