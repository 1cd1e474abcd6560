package logger

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var base = zap.NewNop()

var serviceName = "marketlens"

// Init builds the process logger. Output goes to stderr so stdout stays
// reserved for program results.
func Init(service, level string) error {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return errors.Wrapf(err, "parse log level %q", level)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	l, err := cfg.Build()
	if err != nil {
		return errors.Wrap(err, "build logger")
	}
	base = l
	if service != "" {
		serviceName = service
	}
	return nil
}

// Sync flushes buffered entries.
func Sync() {
	_ = base.Sync()
}

func entry() *zap.Logger {
	return base.With(zap.String("service", serviceName))
}

func Debug(format string, args ...interface{}) {
	entry().Debug(fmt.Sprintf(format, args...))
}

func Info(format string, args ...interface{}) {
	entry().Info(fmt.Sprintf(format, args...))
}

func Warn(format string, args ...interface{}) {
	entry().Warn(fmt.Sprintf(format, args...))
}

func Error(format string, args ...interface{}) {
	entry().Error(fmt.Sprintf(format, args...))
}
