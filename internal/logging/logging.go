// Package logging builds the zap logger shared by the application.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the encoder.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options configures New.
type Options struct {
	Level  string    // debug, info, warn, error; unknown values fall back to info
	Format string    // console or json
	Out    io.Writer // defaults to stderr
}

var levels = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// ParseLevel maps a level name to a zap level.
func ParseLevel(name string) (zapcore.Level, bool) {
	level, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return zapcore.InfoLevel, false
	}
	return level, true
}

// New creates a logger writing to opts.Out.
func New(opts Options) (*zap.Logger, error) {
	level, ok := ParseLevel(opts.Level)
	if !ok && opts.Level != "" {
		return nil, fmt.Errorf("unknown log level %q", opts.Level)
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch opts.Format {
	case "", FormatConsole:
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), zap.NewAtomicLevelAt(level))
	return zap.New(core, zap.AddCaller()), nil
}

// NewFile creates a logger appending to path. The returned close function
// syncs the logger and closes the file.
func NewFile(path string, opts Options) (*zap.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	opts.Out = f
	logger, err := New(opts)
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	closeFn := func() error {
		_ = logger.Sync()
		return f.Close()
	}
	return logger, closeFn, nil
}
