// Package logging builds the zap logger shared by commands and background work.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
type Options struct {
	Level string // debug, info, warn, error (default warn)
	Debug bool   // debug level with caller information
	File  string // log to this rotating file instead of stderr
}

// New creates a logger and a function that flushes it and releases its log
// file. Terminal UIs own the screen, so they pass File to keep log lines off
// it.
func New(opts Options) (*zap.Logger, func(), error) {
	level := zapcore.WarnLevel
	if opts.Level != "" {
		if err := level.Set(opts.Level); err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var sink zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	var file *lumberjack.Logger
	if opts.File != "" {
		file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		sink = zapcore.AddSync(file)
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), sink, level)
	var zopts []zap.Option
	if opts.Debug {
		zopts = append(zopts, zap.AddCaller())
	}
	logger := zap.New(core, zopts...)
	closeFn := func() {
		logger.Sync() //nolint:errcheck
		if file != nil {
			file.Close() //nolint:errcheck
		}
	}
	return logger, closeFn, nil
}
