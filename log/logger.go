package log

import (
	"fmt"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

// SetLogger set log level, json format, color format
func SetLogger(verbosity uint32, jsonFormat, colorFormat bool) {
	logger.SetLevel(logrus.Level(verbosity))
	if jsonFormat {
		logger.Formatter = &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		}
	} else {
		logger.Formatter = &logrus.TextFormatter{
			ForceColors:      colorFormat,
			DisableColors:    !colorFormat,
			FullTimestamp:    true,
			TimestampFormat:  time.RFC3339Nano,
			QuoteEmptyFields: true,
		}
	}
}

// SetLogFile set log file path and rotation
func SetLogFile(logFile string, logRotation, logMaxAge uint64) {
	if logFile == "" {
		return
	}
	var (
		logRotateSuffix = "%Y%m%d%H"
		logFormat       = time.RFC3339Nano
	)
	writer, err := rotatelogs.New(
		logFile+"."+logRotateSuffix,
		rotatelogs.WithLinkName(logFile),
		rotatelogs.WithMaxAge(time.Duration(logMaxAge)*time.Hour),
		rotatelogs.WithRotationTime(time.Duration(logRotation)*time.Hour),
	)
	if err != nil {
		logger.WithError(err).Fatal("create rotate logs failed")
	}
	logger.SetOutput(writer)
	logger.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		FullTimestamp:    true,
		TimestampFormat:  logFormat,
		QuoteEmptyFields: true,
	}
}

// GetLogLevel returns the current log level
func GetLogLevel() uint32 {
	return uint32(logger.GetLevel())
}

// WithFields encapsulate logrus.WithFields
func WithFields(ctx ...interface{}) *logrus.Entry {
	length := len(ctx)
	fields := make(logrus.Fields, length/2)
	for k := 0; k+2 <= length; k += 2 {
		key, ok := ctx[k].(string)
		if !ok {
			key = fmt.Sprintf("%v", ctx[k])
		}
		fields[key] = ctx[k+1]
	}
	if length%2 != 0 {
		fields["oddCtx"] = ctx[length-1]
	}
	return logger.WithFields(fields)
}

// Trace trace
func Trace(msg string, ctx ...interface{}) {
	WithFields(ctx...).Trace(msg)
}

// Tracef tracef
func Tracef(format string, args ...interface{}) {
	logger.Tracef(format, args...)
}

// Debug debug
func Debug(msg string, ctx ...interface{}) {
	WithFields(ctx...).Debug(msg)
}

// Debugf debugf
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Info info
func Info(msg string, ctx ...interface{}) {
	WithFields(ctx...).Info(msg)
}

// Infof infof
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Warn warn
func Warn(msg string, ctx ...interface{}) {
	WithFields(ctx...).Warn(msg)
}

// Warnf warnf
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Error error
func Error(msg string, ctx ...interface{}) {
	WithFields(ctx...).Error(msg)
}

// Errorf errorf
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// Fatal fatal
func Fatal(msg string, ctx ...interface{}) {
	WithFields(ctx...).Fatal(msg)
}

// Fatalf fatalf
func Fatalf(format string, args ...interface{}) {
	logger.Fatalf(format, args...)
}
