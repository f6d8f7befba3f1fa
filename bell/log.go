package bell

import (
	"io"

	"github.com/sirupsen/logrus"
)

var noopLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()
