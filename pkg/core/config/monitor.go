package config

import (
	"reflect"

	"github.com/mitchellh/hashstructure"
	log "github.com/sirupsen/logrus"

	"github.com/signalfx/winsnmp-agent/pkg/monitors/types"
)

// MonitorConfig is used to configure monitor instances.  Anything that is not
// common to all monitors ends up in OtherConfig and is decoded into the
// monitor-specific config struct when the monitor is created.
type MonitorConfig struct {
	// The type of the monitor
	Type string `yaml:"type" json:"type" validate:"required"`
	// A set of extra dimensions (key:value pairs) to include on datapoints
	// and events emitted by the monitor(s) created from this configuration.
	ExtraDimensions map[string]string `yaml:"extraDimensions" json:"extraDimensions"`
	// The interval (in seconds) at which to collect from the monitor(s)
	// created by this configuration.  If not set (or set to 0), the monitor
	// type's own default is used, then the global agent intervalSeconds.
	IntervalSeconds int `yaml:"intervalSeconds" json:"intervalSeconds"`
	// If one or more configurations have this set to true, only those
	// configurations will be considered -- useful for testing
	Solo bool `yaml:"solo" json:"solo"`
	// OtherConfig is everything else that is custom to a particular monitor
	OtherConfig map[string]interface{} `yaml:",inline"`

	BundleDir string `yaml:"-" json:"-"`
	// ValidationError is where a message concerning validation issues can go
	// so that diagnostics can output it.
	ValidationError string          `yaml:"-" json:"-" hash:"ignore"`
	MonitorID       types.MonitorID `yaml:"-" json:"-" hash:"ignore"`
}

// Equals tests if two monitor configs are sufficiently equal to each other.
func (mc *MonitorConfig) Equals(other *MonitorConfig) bool {
	return mc.Type == other.Type && reflect.DeepEqual(mc.OtherConfig, other.OtherConfig)
}

// ExtraConfig returns generic config as a map
func (mc *MonitorConfig) ExtraConfig() map[string]interface{} {
	return mc.OtherConfig
}

// MonitorConfigCore provides a way of getting the MonitorConfig when embedded
// in a struct that is referenced through a more generic interface.
func (mc *MonitorConfig) MonitorConfigCore() *MonitorConfig {
	return mc
}

// Hash calculates a unique hash value for this config struct
func (mc *MonitorConfig) Hash() uint64 {
	hash, err := hashstructure.Hash(mc, nil)
	if err != nil {
		log.WithError(err).Error("Could not get hash of MonitorConfig struct")
		return 0
	}
	return hash
}

// MonitorCustomConfig represents monitor-specific configuration that doesn't
// appear in the MonitorConfig struct.
type MonitorCustomConfig interface {
	MonitorConfigCore() *MonitorConfig
}
