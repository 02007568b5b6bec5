// Package log provides a global logger for zap.
package log

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Zap global logger, log.Sync() must be called before exiting.
var log *zap.Logger

func init() {
	// Initialize to No-Op to avoid panics
	log = zap.NewNop()
}

// Setup configures zap's logger accordingly to the parameters received.
func Setup(development bool, outFiles []string) error {
	var (
		config zap.Config
		err    error
	)

	if development {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	for _, f := range outFiles {
		dir := filepath.Dir(f)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0700); err != nil {
				return errors.Wrapf(err, "creating directories: %q", f)
			}
		}
	}
	config.OutputPaths = append(config.OutputPaths, outFiles...)

	log, err = config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return errors.Wrap(err, "building logger configuration")
	}

	return nil
}

// DPanic logs a message at DPanicLevel. If the logger is in development
// mode, it then panics.
func DPanic(msg string, fields ...zap.Field) {
	log.DPanic(msg, fields...)
}

// Debug logs a message at DebugLevel.
func Debug(msg string, fields ...zap.Field) {
	log.Debug(msg, fields...)
}

// Error logs a message at ErrorLevel.
func Error(msg string, fields ...zap.Field) {
	log.Error(msg, fields...)
}

// Fatal logs a message at FatalLevel, the logger then calls os.Exit(1).
func Fatal(msg string, fields ...zap.Field) {
	log.Fatal(msg, fields...)
}

// Info logs a message at InfoLevel.
func Info(msg string, fields ...zap.Field) {
	log.Info(msg, fields...)
}

// Sugar wraps the Logger to provide a more ergonomic, but slightly slower,
// API.
func Sugar() *zap.SugaredLogger {
	return log.Sugar()
}

// Sync calls the underlying Core's Sync method, flushing any buffered log
// entries. Applications should take care to call Sync before exiting.
func Sync() error {
	return log.Sync()
}

// Warn logs a message at WarnLevel.
func Warn(msg string, fields ...zap.Field) {
	log.Warn(msg, fields...)
}
