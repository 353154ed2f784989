package cli

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/roach88/ndview/internal/harness"
	"github.com/roach88/ndview/internal/infer"
	"github.com/roach88/ndview/internal/ndarray"
)

// newLogger builds the CLI logger. Verbose runs get a human-readable
// development logger at debug level; otherwise only warnings and errors
// are written, as JSON.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if verbose {
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(w),
			zap.DebugLevel,
		)
		return zap.New(core, zap.Development())
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		zap.WarnLevel,
	)
	return zap.New(core)
}

// installLogger routes every package logger through l.
func installLogger(l *zap.Logger) {
	infer.SetLogger(l)
	ndarray.SetLogger(l)
	harness.SetLogger(l)
}
