// Package util holds small helpers shared by the command-line front
// ends; it is not imported by the skein256/skein512/skein1024 hash
// packages themselves.
package util

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.SugaredLogger

// InitLogger initializes the global logger. level is one of
// debug/info/warn/error; format is "json" or anything else for the
// human-readable console encoder.
func InitLogger(level, format string) error {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	var encoder zapcore.Encoder
	if format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), zapLevel)
	zapLogger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	logger = zapLogger.Sugar()
	return nil
}

// Log returns the global logger, lazily falling back to a development
// default if InitLogger was never called.
func Log() *zap.SugaredLogger {
	if logger == nil {
		zapLogger, _ := zap.NewDevelopment()
		logger = zapLogger.Sugar()
	}
	return logger
}

func Debugf(template string, args ...interface{}) { Log().Debugf(template, args...) }
func Infof(template string, args ...interface{})  { Log().Infof(template, args...) }
func Warnf(template string, args ...interface{})  { Log().Warnf(template, args...) }
func Errorf(template string, args ...interface{}) { Log().Errorf(template, args...) }
func Fatalf(template string, args ...interface{}) { Log().Fatalf(template, args...) }
