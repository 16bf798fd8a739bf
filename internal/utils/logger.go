package utils

import (
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger     *logrus.Logger
	loggerOnce sync.Once
)

// GetLogger returns a singleton logger instance
func GetLogger() *logrus.Logger {
	loggerOnce.Do(func() {
		logger = logrus.New()
		logger.SetLevel(logrus.InfoLevel)

		// Set formatter
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})

		// Set output to stdout by default
		logger.SetOutput(os.Stdout)
	})

	return logger
}

// SetLogLevel applies a configured level such as "debug" or "warn".
func SetLogLevel(level string) error {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	GetLogger().SetLevel(logLevel)
	return nil
}

// ComponentLogger tags every entry with the component that produced it.
func ComponentLogger(component string) *logrus.Entry {
	return GetLogger().WithField("component", component)
}
