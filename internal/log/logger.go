package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Field = zap.Field

// Logger is the only logging API the rest of the application depends on.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Sync() error
}

// Options control where and how diagnostics are written.
type Options struct {
	Level    Level
	LogToStd bool   // console encoding to stderr
	LogFile  string // json encoding to the file, used when LogToStd is false
}

func New(opts Options) (Logger, error) {
	cfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(opts.Level.zapLevel()),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:     "msg",
			LevelKey:       "lvl",
			TimeKey:        "ts",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			StacktraceKey:  "stack",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	if !opts.LogToStd && opts.LogFile != "" {
		cfg.Encoding = "json"
		cfg.OutputPaths = []string{opts.LogFile}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return zap.NewNop()
}

// Wrap adapts an existing zap logger, e.g. an observer one in tests.
func Wrap(core zapcore.Core) Logger {
	return zap.New(core)
}

func String(key, val string) Field {
	return zap.String(key, val)
}

func Int(key string, val int) Field {
	return zap.Int(key, val)
}

func Uint64(key string, val uint64) Field {
	return zap.Uint64(key, val)
}

func Bool(key string, val bool) Field {
	return zap.Bool(key, val)
}

func Any(key string, val interface{}) Field {
	return zap.Any(key, val)
}

// Cause attaches an error under the "cause" key.
func Cause(err error) Field {
	return zap.NamedError("cause", err)
}
