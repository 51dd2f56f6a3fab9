// Package logging wires up the bridge's structured logger following the
// teacher's (jfallot-mqtt_exporter) choice of github.com/sirupsen/logrus,
// generalized to the bridge's file+level configuration (spec §6,
// mqtt_bridge.logging) instead of a single global verbose flag.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logging surface every component depends on. It is
// satisfied directly by *logrus.Logger and *logrus.Entry, so components
// can be handed either the root logger or one pre-populated with fields
// (WithField/WithFields) without any adapter.
type Logger = logrus.FieldLogger

// Config is the mqtt_bridge.logging section of the configuration file.
type Config struct {
	Filename string `mapstructure:"filename"`
	Level    string `mapstructure:"level" default:"info"`
}

var levelByName = map[string]logrus.Level{
	"trace":    logrus.TraceLevel,
	"debug":    logrus.DebugLevel,
	"info":     logrus.InfoLevel,
	"warn":     logrus.WarnLevel,
	"error":    logrus.ErrorLevel,
	"critical": logrus.FatalLevel,
}

// New builds a *logrus.Logger from cfg. An empty Filename logs to stderr,
// matching the teacher's default. Level "off" discards all output (Fatal
// calls still terminate the process; they simply log nothing on the way
// out).
func New(cfg Config) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.Level == "off" {
		logger.SetOutput(io.Discard)
		logger.SetLevel(logrus.PanicLevel)
	} else if level, ok := levelByName[cfg.Level]; ok {
		logger.SetLevel(level)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	if cfg.Filename != "" {
		f, err := os.OpenFile(cfg.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		logger.SetOutput(f)
	}

	return logger, nil
}
