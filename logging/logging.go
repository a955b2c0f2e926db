/*package logging builds the zap loggers used by the flrwcalc command
line tool. The flrw library itself never logs: its warnings go through a
handler that the tool points at one of these loggers.*/
package logging

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a console logger at the given level, one of "debug",
// "info", "warn", or "error". Log lines go to stderr: stdout is reserved
// for data tables so that flrwcalc output can be piped.
func New(level string) (*zap.Logger, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("I don't recognize the log level '%s'. "+
			"The valid levels are debug, info, warn, and error.", level)
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(l),
		Encoding:          "console",
		EncoderConfig:     encoderConfig(),
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     true,
		DisableStacktrace: true,
	}
	return cfg.Build()
}

// Nop returns a logger that discards everything it is given.
func Nop() *zap.Logger { return zap.NewNop() }

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		MessageKey:     "M",
		FunctionKey:    zapcore.OmitKey,
		CallerKey:      zapcore.OmitKey,
		StacktraceKey:  zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// MemStats returns fields with the current memory use of the process, for
// the performance line logged after a mode runs.
func MemStats() []zap.Field {
	ms := runtime.MemStats{}
	runtime.ReadMemStats(&ms)
	return []zap.Field{
		zap.Uint64("allocMB", ms.Alloc>>20),
		zap.Uint64("sysMB", ms.Sys>>20),
		zap.Uint64("totalAllocMB", ms.TotalAlloc>>20),
	}
}
