// pkg/logger/logger.go
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing human readable diagnostics to stderr.
// When verbose is false, every message is discarded.
func New(verbose bool) *zap.SugaredLogger {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter is New with an explicit destination
func NewWithWriter(w io.Writer, verbose bool) *zap.SugaredLogger {
	if !verbose {
		return zap.NewNop().Sugar()
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: " ",
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core).Sugar()
}
