package source

import (
	"io"

	"github.com/sirupsen/logrus"
)

// noopLogger is a shared logger instance that discards all output
var noopLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()
