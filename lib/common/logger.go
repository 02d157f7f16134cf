package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/lni/dragonboat/v4/logger"
)

// Names of the loggers used by this module
const (
	LoggerSettings = "settings"
	LoggerDocument = "document"
	LoggerCodec    = "codec"
)

// logContext names the settings file log lines refer to ("<format>:<path>").
// It is set by InitLoggers and empty until then.
var logContext atomic.Value

// --------------------------------------------------------------------------
// Custom Logger (implements dragonboats logger.ILogger)
// --------------------------------------------------------------------------

// settingsLogger implements the ILogger interface with custom formatting
type settingsLogger struct {
	name   string
	level  logger.LogLevel
	logger *log.Logger
}

func (l *settingsLogger) SetLevel(level logger.LogLevel) {
	l.level = level
}

func (l *settingsLogger) Debugf(format string, args ...interface{}) {
	if l.level >= logger.DEBUG {
		l.log("DEBUG", format, args...)
	}
}

func (l *settingsLogger) Infof(format string, args ...interface{}) {
	if l.level >= logger.INFO {
		l.log("INFO", format, args...)
	}
}

func (l *settingsLogger) Warningf(format string, args ...interface{}) {
	if l.level >= logger.WARNING {
		l.log("WARN", format, args...)
	}
}

func (l *settingsLogger) Errorf(format string, args ...interface{}) {
	if l.level >= logger.ERROR {
		l.log("ERROR", format, args...)
	}
}

func (l *settingsLogger) Panicf(format string, args ...interface{}) {
	if l.level >= logger.CRITICAL {
		panic(fmt.Sprintf(format, args...))
	}
}

// log writes a line prefixed with the level, the logger name and the settings file
func (l *settingsLogger) log(levelStr string, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	file, _ := logContext.Load().(string)
	if file == "" {
		file = "-"
	}
	l.logger.Printf("%-5s | %-8s | %s | %s", levelStr, l.name, file, message)
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

// CreateLogger implements dragonboats logger.Factory. Settings problems never
// stop the host, so they are reported on stderr and kept apart from the
// host's own output.
func CreateLogger(pkgName string) logger.ILogger {
	return newSettingsLogger(pkgName, os.Stderr)
}

func newSettingsLogger(name string, w io.Writer) *settingsLogger {
	return &settingsLogger{
		name:   name,
		level:  logger.INFO,
		logger: log.New(w, "psettings ", log.Ldate|log.Ltime),
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// parseLogLevel converts a string level to logger.LogLevel
func parseLogLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logger.DEBUG, nil
	case "info", "":
		return logger.INFO, nil
	case "warning", "warn":
		return logger.WARNING, nil
	case "error":
		return logger.ERROR, nil
	default:
		return 0, NewError(RetCInvalidValue, fmt.Sprintf("invalid log level: %s. must be one of debug, info, warn, error", level))
	}
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// InitLoggers installs the custom logger factory, sets the level of all
// loggers of this module and tags every line with the format and path of the
// settings file. Loggers obtained before the call are switched over.
func InitLoggers(config Config) error {
	level, err := parseLogLevel(config.LogLevel)
	if err != nil {
		return err
	}

	logContext.Store(fmt.Sprintf("%s:%s", config.Format, config.Path()))

	// Set as the global logger factory
	logger.SetLoggerFactory(CreateLogger)

	for _, name := range []string{LoggerSettings, LoggerDocument, LoggerCodec} {
		logger.GetLogger(name).SetLevel(level)
	}
	return nil
}
