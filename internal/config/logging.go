// internal/config/logging.go
package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// ConfigureLogger applies the log level and format to the standard logrus
// logger.
func (l LogConfig) ConfigureLogger() {
	logrus.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if l.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
