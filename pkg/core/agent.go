// Package core contains the central frame of the agent that hooks up the
// various subsystems.
package core

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/signalfx/winsnmp-agent/pkg/core/config"
	"github.com/signalfx/winsnmp-agent/pkg/core/writer"
	"github.com/signalfx/winsnmp-agent/pkg/monitors"
)

// VersionLine should be populated by the startup logic to contain version
// information that can be reported in diagnostics.
var VersionLine string

// Agent is what hooks up the monitors and the datapoint writer.
type Agent struct {
	configPath string
	forceDebug bool

	lock       sync.Mutex
	monitors   *monitors.MonitorManager
	writer     *writer.Writer
	lastConfig *config.Config
}

// Startup loads the config at configPath and starts the writer and every
// configured monitor.  If forceDebug is true the log level from the config
// is ignored.
func Startup(configPath string, forceDebug bool) (*Agent, error) {
	conf, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	a := &Agent{
		configPath: configPath,
		forceDebug: forceDebug,
	}
	if err := a.applyLogging(conf); err != nil {
		return nil, err
	}

	a.writer, err = writer.New(&conf.Writer)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure datapoint writer")
	}

	// These channels never change for the lifetime of the agent, so writer
	// config changes require a restart.
	a.monitors = monitors.NewMonitorManager(a.writer.DPChannel(), a.writer.EventChannel())
	a.configure(conf)

	log.Infof("Started agent with %d monitor configs", len(conf.Monitors))
	return a, nil
}

func (a *Agent) applyLogging(conf *config.Config) error {
	if err := conf.Logging.Apply(); err != nil {
		return err
	}
	if a.forceDebug {
		log.SetLevel(log.DebugLevel)
	}
	log.Infof("Using log level %s", log.GetLevel().String())
	return nil
}

func (a *Agent) configure(conf *config.Config) {
	a.monitors.Configure(conf.Monitors, conf.IntervalSeconds)
	for _, bad := range a.monitors.BadConfigs() {
		log.WithFields(log.Fields{
			"monitorType": bad.Type,
			"error":       bad.ValidationError,
		}).Warn("Monitor config is not active")
	}
	a.lastConfig = conf
}

// Reload reads the config file again and reconfigures the monitors.  Only
// monitors whose config changed are restarted.
func (a *Agent) Reload() error {
	a.lock.Lock()
	defer a.lock.Unlock()

	conf, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if err := a.applyLogging(conf); err != nil {
		return err
	}

	if a.lastConfig != nil && !reflect.DeepEqual(a.lastConfig.Writer, conf.Writer) {
		log.Warn("Writer config changed, the agent must be restarted for it to take effect")
		conf.Writer = a.lastConfig.Writer
	}

	a.configure(conf)
	return nil
}

// Stats returns the collection counters of the active monitors
func (a *Agent) Stats() []monitors.Stats {
	return a.monitors.Stats()
}

// Shutdown stops all monitors and then the writer
func (a *Agent) Shutdown() {
	a.lock.Lock()
	defer a.lock.Unlock()

	a.monitors.Shutdown()
	a.writer.Shutdown()
	log.Info("Agent shut down")
}
