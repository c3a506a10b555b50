package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LoggerConfig describes where a named logger writes.
type LoggerConfig struct {
	Name  string
	Dir   string
	File  string
	Level string
	// Console receives a copy of every line; stderr when nil.
	Console io.Writer
}

var (
	loggersMu sync.Mutex
	loggers   = map[string]*slog.Logger{}
)

// SetupLogger returns the logger registered under cfg.Name, building it on
// first use. The first call wins for the lifetime of the process: later calls
// with the same name return the existing logger unchanged.
func SetupLogger(cfg LoggerConfig) (*slog.Logger, error) {
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "api_tests"
	}

	loggersMu.Lock()
	defer loggersMu.Unlock()
	if logger, ok := loggers[name]; ok {
		return logger, nil
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	dir := cfg.Dir
	if dir == "" {
		dir = "Test_Results"
	}
	file := cfg.File
	if file == "" {
		file = "test_logs.log"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, file), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}

	logger := slog.New(NewLineHandler(io.MultiWriter(f, console), level))
	loggers[name] = logger
	return logger, nil
}

// ParseLevel maps the configured level names onto slog levels.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "", "INFO":
		return slog.LevelInfo, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// DiscardLogger is the fallback used by components built without a logger.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
