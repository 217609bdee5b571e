// Package config contains configuration structures and related helper logic for all
// agent components.
package config

import (
	"os"

	fqdn "github.com/Showmax/go-fqdn"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/signalfx/winsnmp-agent/pkg/core/config/validation"
)

// Config is the top level config struct for configurations that are common
// to all platforms
type Config struct {
	// The hostname that will be reported as the `host` dimension.  If blank,
	// this will be auto-determined by the agent from the fully qualified
	// hostname, falling back to the plain hostname.
	Hostname string `yaml:"hostname"`
	// If true, the `host` dimension is not added to datapoints and events.
	DisableHostDimensions bool `yaml:"disableHostDimensions"`
	// The default interval (in seconds) at which monitors collect.  Monitor
	// types may have their own default (the datasource cycle time) that takes
	// precedence over this.
	IntervalSeconds int `yaml:"intervalSeconds" default:"300" validate:"gt=0"`
	// The root of the agent bundle.  External scripts are looked up in its
	// `libexec` subdirectory.
	BundleDir string `yaml:"bundleDir"`
	// Dimensions (key:value pairs) that will be added to every datapoint and
	// event emitted by the agent.
	GlobalDimensions map[string]string `yaml:"globalDimensions" default:"{}"`
	// Logging configuration
	Logging LogConfig `yaml:"logging" default:"{}"`
	// Configuration of the datapoint/event writer
	Writer WriterConfig `yaml:"writer" default:"{}"`
	// A list of monitor configurations
	Monitors []MonitorConfig `yaml:"monitors" default:"[]"`
}

func (c *Config) initialize() (*Config, error) {
	if c.Hostname == "" {
		c.Hostname = defaultHostname()
	}

	if c.BundleDir == "" {
		exe, err := os.Executable()
		if err == nil {
			c.BundleDir = bundleDirFromExecutable(exe)
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	c.propagateValuesDown()
	return c, nil
}

// propagateValuesDown copies agent-level values that monitors need into each
// monitor config.
func (c *Config) propagateValuesDown() {
	c.Writer.GlobalDimensions = hostDimensions(c.GlobalDimensions, c.Hostname, c.DisableHostDimensions)

	for i := range c.Monitors {
		c.Monitors[i].BundleDir = c.BundleDir
	}
}

// hostDimensions returns a copy of dims with `host` set, unless it is
// disabled or the user already set it.
func hostDimensions(dims map[string]string, host string, disabled bool) map[string]string {
	out := make(map[string]string, len(dims)+1)
	for k, v := range dims {
		out[k] = v
	}
	if _, ok := out["host"]; !ok && !disabled && host != "" {
		out["host"] = host
	}
	return out
}

func defaultHostname() string {
	host, err := fqdn.FqdnHostname()
	if host == "unknown" || host == "localhost" || err != nil {
		log.WithFields(log.Fields{
			"detail": err,
		}).Info("Error getting fully qualified hostname, using plain hostname")
		host, err = os.Hostname()
		if err != nil {
			log.Error("Error getting system simple hostname, cannot set hostname")
			return ""
		}
	}

	log.Infof("Using hostname %s", host)
	return host
}

func (c *Config) validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Writer.Validate(); err != nil {
		return errors.Wrap(err, "writer config is invalid")
	}
	for i := range c.Monitors {
		if c.Monitors[i].Type == "" {
			return errors.Errorf("monitor config at index %d has no type", i)
		}
	}
	return nil
}
