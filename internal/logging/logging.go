package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "letsstretch.log"

// Config controls where log lines go.
type Config struct {
	// Dir holds the rotating log file. Empty disables file output.
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Stderr     bool
}

// DefaultConfig logs to stderr and to a rotating file under dir.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:        dir,
		MaxSizeMB:  5,
		MaxBackups: 3,
		MaxAgeDays: 28,
		Stderr:     true,
	}
}

// Logger is a *log.Logger with a closable file sink.
type Logger struct {
	*log.Logger
	file *lumberjack.Logger
}

// New builds a logger for config. The standard logger is redirected to the
// same writer so package-level log.Printf calls end up in the same place.
func New(config Config) (*Logger, error) {
	var writers []io.Writer
	if config.Stderr {
		writers = append(writers, os.Stderr)
	}

	var file *lumberjack.Logger
	if config.Dir != "" {
		if err := os.MkdirAll(config.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		file = &lumberjack.Logger{
			Filename:   filepath.Join(config.Dir, logFileName),
			MaxSize:    config.MaxSizeMB,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAgeDays,
		}
		writers = append(writers, file)
	}

	var output io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		output = writers[0]
	default:
		output = io.MultiWriter(writers...)
	}

	flags := log.LstdFlags
	log.SetOutput(output)
	log.SetFlags(flags)
	return &Logger{Logger: log.New(output, "", flags), file: file}, nil
}

// Path returns the log file path, or "" without file output.
func (logger *Logger) Path() string {
	if logger.file == nil {
		return ""
	}
	return logger.file.Filename
}

// Close flushes and closes the log file.
func (logger *Logger) Close() error {
	if logger.file == nil {
		return nil
	}
	return logger.file.Close()
}
