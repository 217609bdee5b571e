package config

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// LogConfig contains configuration related to logging
type LogConfig struct {
	// Valid values are 'debug', 'info', 'warn', and 'error'
	Level string `yaml:"level" default:"info"`
	// Valid values are 'text' and 'json'
	Format string `yaml:"format" default:"text" validate:"oneof=text json"`
}

// LogrusLevel returns a logrus log level based on the configured level in
// LogConfig.
func (lc *LogConfig) LogrusLevel() (log.Level, error) {
	if lc.Level == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		return log.InfoLevel, errors.Wrapf(err, "invalid log level %q", lc.Level)
	}
	return level, nil
}

// LogrusFormatter returns the formatter matching Format
func (lc *LogConfig) LogrusFormatter() log.Formatter {
	if lc.Format == "json" {
		return &log.JSONFormatter{}
	}
	return &prefixed.TextFormatter{FullTimestamp: true}
}

// Apply configures the standard logrus logger
func (lc *LogConfig) Apply() error {
	level, err := lc.LogrusLevel()
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetFormatter(lc.LogrusFormatter())
	log.SetOutput(os.Stdout)
	return nil
}

// Validate the logging config
func (lc *LogConfig) Validate() error {
	_, err := lc.LogrusLevel()
	return err
}
