// Package logging builds the zap logger used for diagnostics.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelForVerbosity maps the -v count to a log level: none shows warnings,
// -v shows info, -vv and beyond show debug output including every command run.
func LevelForVerbosity(verbosity int) zapcore.Level {
	switch {
	case verbosity <= 0:
		return zapcore.WarnLevel
	case verbosity == 1:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// New returns a console logger writing to w.
func New(verbosity int, w io.Writer) *zap.Logger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	encoderCfg.CallerKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(LevelForVerbosity(verbosity)),
	)
	return zap.New(core)
}
