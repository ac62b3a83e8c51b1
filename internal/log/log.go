package log

import (
	"context"
	"os"

	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type (
	// Logger is the interface used by all components
	Logger logrus.FieldLogger
	// LoggerHooker adds AddHook method to Logger for additional outputs
	LoggerHooker interface {
		Logger
		AddHook(hook logrus.Hook)
	}

	loggerKey struct{}
)

type logger struct {
	*logrus.Logger
}

func getLogFileWriter(opts CmdOpts) any {
	if opts.LogFileRotate {
		return &lumberjack.Logger{
			Filename:   opts.LogFile,
			MaxSize:    opts.LogFileSize,
			MaxBackups: opts.LogFileNumber,
			MaxAge:     opts.LogFileAge,
		}
	}
	return opts.LogFile
}

const (
	disableColors = true
	enableColors  = false
)

func getLogFileFormatter(opts CmdOpts) logrus.Formatter {
	if opts.LogFileFormat == "text" {
		return newFormatter(disableColors)
	}
	return &logrus.JSONFormatter{}
}

// Init creates logging facilities for the application.
// Stdout is reserved for agent output, so console logging goes to stderr.
func Init(opts CmdOpts) LoggerHooker {
	var err error
	l := logger{logrus.New()}
	l.Out = os.Stderr
	if opts.LogFile > "" {
		l.AddHook(lfshook.NewHook(getLogFileWriter(opts), getLogFileFormatter(opts)))
	}
	l.Level, err = logrus.ParseLevel(opts.LogLevel)
	if err != nil {
		l.Level = logrus.InfoLevel
	}
	l.SetFormatter(newFormatter(enableColors))
	l.SetReportCaller(l.Level > logrus.InfoLevel)
	return l
}

// WithLogger returns a new context with the provided logger. Use in
// combination with logger.WithField(s) for great effect
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FallbackLogger is an alias for the standard logger
var FallbackLogger = Init(CmdOpts{})

// GetLogger retrieves the current logger from the context. If no logger is
// available, the default logger is returned
func GetLogger(ctx context.Context) Logger {
	logger := ctx.Value(loggerKey{})
	if logger == nil {
		return FallbackLogger
	}
	return logger.(Logger)
}

func NewNoopLogger() Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel) // Noop logger should not output anything
	return l
}
