// Package monitors is the core logic for monitors.  Monitors are what collect
// metrics from the environment.  They have a simple interface that all must
// implement: the Configure method, which takes one argument of the same type
// that you pass as the configTemplate to the Register function.  Optionally,
// monitors may implement the niladic Shutdown method to do cleanup.  Monitors
// will never be reused after the Shutdown method is called.
//
// Monitors that implement Collectable are driven by the framework: Collect is
// called once per interval for as long as the monitor is active.
//
// If a monitor wants to send datapoints and events, its type should define
// an "Output" field of type types.Output.  It will be injected before
// Configure is called.
package monitors

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/signalfx/winsnmp-agent/pkg/core/config"
	"github.com/signalfx/winsnmp-agent/pkg/utils"
)

// MonitorFactory is a niladic function that creates an unconfigured instance
// of a monitor.
type MonitorFactory func() interface{}

// MonitorFactories holds all of the registered monitor factories
var MonitorFactories = map[string]MonitorFactory{}

// These are blank (zero-value) instances of the configuration struct for a
// particular monitor type.
var configTemplates = map[string]config.MonitorCustomConfig{}

// MonitorMetadatas contains a mapping of monitor type to its metadata.
var MonitorMetadatas = map[string]*Metadata{}

// Collectable is implemented by monitors that want the framework to run their
// collection cycle on the configured interval.
type Collectable interface {
	Collect(ctx context.Context) error
}

// Shutdownable should be implemented by all monitors that need to clean up
// resources before being destroyed.
type Shutdownable interface {
	Shutdown()
}

// KeyedConfig is implemented by monitor configs that define their own notion
// of uniqueness.  Two configs with the same key are never active at the same
// time.
type KeyedConfig interface {
	ConfigKey() string
}

// Register a new monitor type with the agent.  This is intended to be called
// from the init function of the module of a specific monitor
// implementation. configTemplate should be a zero-valued struct that is of the
// same type as the parameter to the Configure method for this monitor type.
func Register(metadata *Metadata, factory MonitorFactory, configTemplate config.MonitorCustomConfig) {
	if _, ok := MonitorFactories[metadata.MonitorType]; ok {
		panic("Monitor type '" + metadata.MonitorType + "' already registered")
	}
	MonitorFactories[metadata.MonitorType] = factory
	configTemplates[metadata.MonitorType] = configTemplate
	MonitorMetadatas[metadata.MonitorType] = metadata
}

// DeregisterAll unregisters all monitor types.  Primarily intended for testing
// purposes.
func DeregisterAll() {
	for k := range MonitorFactories {
		delete(MonitorFactories, k)
	}

	for k := range configTemplates {
		delete(configTemplates, k)
	}

	for k := range MonitorMetadatas {
		delete(MonitorMetadatas, k)
	}
}

// Creates a new, unconfigured instance of a monitor of _type.  Returns nil if
// the monitor type is not registered.
func newMonitor(_type string) interface{} {
	if factory, ok := MonitorFactories[_type]; ok {
		return factory()
	}

	log.WithFields(log.Fields{
		"monitorType": _type,
	}).Error("Monitor type not supported")
	return nil
}

// Takes a generic MonitorConfig and pulls out monitor-specific config to
// populate a clone of the config template that was registered for the monitor
// type specified in conf.
func getCustomConfigForMonitor(conf *config.MonitorConfig) (config.MonitorCustomConfig, error) {
	confTemplate, ok := configTemplates[conf.Type]
	if !ok {
		return nil, errUnknownMonitorType
	}
	monConfig := utils.CloneInterface(confTemplate).(config.MonitorCustomConfig)

	if err := config.DecodeExtraConfig(conf, monConfig); err != nil {
		return nil, err
	}

	// The remaining other config has been decoded into the custom struct.
	monConfig.MonitorConfigCore().OtherConfig = nil
	return monConfig, nil
}

func anyMarkedSolo(confs []config.MonitorConfig) bool {
	for i := range confs {
		if confs[i].Solo {
			return true
		}
	}
	return false
}
