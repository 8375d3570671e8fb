// Package logging builds dreamwall's structured logger: a charmbracelet/log
// logger writing to a size-rotated file under the data directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configure New.
type Options struct {
	Dir    string // log directory; created if missing
	File   string // file name inside Dir; empty uses dreamwall.log
	Debug  bool
	Stderr bool // also write to stderr (headless modes)
}

const (
	defaultFile = "dreamwall.log"
	maxSizeMB   = 10
	maxBackups  = 3
	maxAgeDays  = 28
)

// New returns a logger and the closer for its rotating file.
func New(opts Options) (*log.Logger, io.Closer, error) {
	if opts.Dir == "" {
		return nil, nil, fmt.Errorf("logging: directory is required")
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	name := opts.File
	if name == "" {
		name = defaultFile
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, name),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}

	var w io.Writer = file
	if opts.Stderr {
		w = io.MultiWriter(os.Stderr, file)
	}

	level := log.InfoLevel
	if opts.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    opts.Debug,
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Level:           level,
		Prefix:          "dreamwall",
	})
	return logger, file, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
