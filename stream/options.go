package stream

import (
	"io"

	"github.com/lixenwraith/termstream/terminal"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultQueueCapacity is the initial inbox ring size
	DefaultQueueCapacity = 64
	// DefaultBufferCapacity is the initial partial-sequence buffer size
	DefaultBufferCapacity = 10
)

// noopLogger discards everything; used when no logger is supplied
var noopLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

type options struct {
	decoder        terminal.Decoder
	logger         logrus.FieldLogger
	queueCapacity  int
	bufferCapacity int
}

// Option configures an EventStream
type Option func(*options)

// WithDecoder replaces terminal.Parse as the byte decoder
func WithDecoder(d terminal.Decoder) Option {
	return func(o *options) {
		if d != nil {
			o.decoder = d
		}
	}
}

// WithLogger sets the logger for decode diagnostics, nil keeps the no-op logger
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithQueueCapacity sets the initial inbox capacity; the inbox still grows
func WithQueueCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueCapacity = n
		}
	}
}

// WithBufferCapacity sets the initial capacity of the partial-sequence buffer
func WithBufferCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bufferCapacity = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		decoder:        terminal.Parse,
		logger:         noopLogger,
		queueCapacity:  DefaultQueueCapacity,
		bufferCapacity: DefaultBufferCapacity,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
