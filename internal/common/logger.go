// logger.go - Process-wide structured logger

package common

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger     *logrus.Logger
	loggerOnce sync.Once
)

// GetLogger returns the shared logger, creating a default one on first use.
func GetLogger() *logrus.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = newLogger(os.Stdout, "info", "text")
		}
	})
	return logger
}

// SetupLogger configures the shared logger from level and format strings.
// Unknown levels fall back to info, unknown formats to text.
func SetupLogger(level, format string) *logrus.Logger {
	l := newLogger(os.Stdout, level, format)
	loggerOnce.Do(func() {})
	logger = l
	return l
}

// SetLogger replaces the shared logger (used by tests to capture output).
func SetLogger(l *logrus.Logger) {
	loggerOnce.Do(func() {})
	logger = l
}

func newLogger(out io.Writer, level, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}
