package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Fields represents structured logging fields
type Fields = logrus.Fields

// NewLogger creates a new configured logger instance
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)
	logger.SetLevel(levelFromEnv())
	return logger
}

// NewComponentLogger creates a logger entry tagged with a component field
func NewComponentLogger(component string) *logrus.Entry {
	return NewLogger().WithField("component", component)
}

func levelFromEnv() logrus.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
