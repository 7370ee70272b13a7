package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogger configures the global logrus logger from the environment.
// LOG_LEVEL defaults to info; LOG_FORMAT=json switches to JSON output.
func SetupLogger() {
	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if getEnv("LOG_FORMAT", "text") == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	logrus.SetOutput(os.Stdout)
}
