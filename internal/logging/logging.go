package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a sugared zap logger; callers use the Infow/Warnw style.
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger logs to stderr. Without verbose only warnings and errors are
// shown.
func NewLogger(verbose bool) *Logger {
	logger, err := newConfig(verbose, "stderr").Build()
	if err != nil {
		// stderr sink cannot fail to open
		return NewNop()
	}
	return &Logger{logger.Sugar()}
}

// NewFileLogger appends to path, for when the terminal belongs to the UI.
func NewFileLogger(path string, verbose bool) (*Logger, error) {
	cfg := newConfig(verbose, path)
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &Logger{logger.Sugar()}, nil
}

func NewNop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}

func newConfig(verbose bool, output string) zap.Config {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	cfg.DisableCaller = !verbose
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg
}
