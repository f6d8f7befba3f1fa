package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	logFileName = "termstream.log"
	maxLogSize  = 10 * 1024 * 1024 // Rotate above 10MB
)

// setupLogging points logger (and the standard log package) at
// dir/termstream.log when enabled, or discards everything otherwise.
// Output never goes to stdout/stderr since the terminal is in raw mode.
// The returned file is nil when logging is disabled or the file could not
// be opened.
func setupLogging(logger *logrus.Logger, dir string, enabled bool) *os.File {
	if !enabled {
		logger.SetOutput(io.Discard)
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.SetOutput(io.Discard)
		log.SetOutput(io.Discard)
		return nil
	}

	path := filepath.Join(dir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(dir, fmt.Sprintf("termstream-%s.log", time.Now().Format("20060102-150405")))
		os.Rename(path, rotated)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger.SetOutput(io.Discard)
		log.SetOutput(io.Discard)
		return nil
	}

	logger.SetOutput(f)
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	log.SetOutput(f)
	return f
}
