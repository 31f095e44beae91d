// Package log configures the logrus loggers used by the server and the
// terminal browser.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Options controls where and how log lines are written.
type Options struct {
	// FilePath, when set, appends log output to that file instead of Output.
	FilePath string
	Level    string
	// Format is "text" or "json".
	Format string
	Output io.Writer
}

// New builds a logger from opts. The returned closer releases the log file,
// if one was opened, and is never nil.
func New(opts Options) (*log.Logger, io.Closer, error) {
	logger := log.New()
	var closer io.Closer = nopCloser{}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.FilePath != "" {
		file, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = file
		closer = file
	}
	logger.SetOutput(out)

	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			_ = closer.Close()
			return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	switch strings.ToLower(opts.Format) {
	case "", "text":
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		_ = closer.Close()
		return nil, nil, fmt.Errorf("invalid log format %q", opts.Format)
	}

	return logger, closer, nil
}

// Component returns an entry tagged with the name of the emitting component,
// for example "UserAPI".
func Component(logger log.FieldLogger, name string) *log.Entry {
	return logger.WithField("component", name)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
