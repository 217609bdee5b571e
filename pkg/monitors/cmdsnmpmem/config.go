package cmdsnmpmem

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
	"github.com/signalfx/winsnmp-agent/pkg/core/config"
)

// Config for the cmd-snmp-mem monitor.  The string properties accept
// ${dev/...} and ${here/id} expressions that are rendered against Device.
type Config struct {
	config.MonitorConfig

	// The device that is being monitored
	Device Device `yaml:"device"`

	// ID of the template that holds this datasource
	TemplateID string `yaml:"templateId" default:"WinSnmpMemory"`
	// ID of the datasource within the template
	DatasourceID string `yaml:"datasourceId" default:"CmdSnmpMem"`
	// The component that the datapoints belong to
	Component string `yaml:"component" default:"${here/id}"`
	// Event class given to events that don't set their own
	EventClass string `yaml:"eventClass" default:"/Perf/Memory/Snmp"`

	// Hostname of the device, polled in place of its id
	DeviceHostname string `yaml:"hostname" default:"${dev/id}"`
	// IP address to poll.  Takes precedence over the hostname.
	IPAddress string `yaml:"ipAddress" default:"${dev/manageIp}"`
	// SNMP version to use (v1 or v2c).  Falls back to the device's zSnmpVer
	// and then to v1.
	SNMPVer string `yaml:"snmpVer"`
	// SNMP community to use.  Falls back to the device's zSnmpCommunity and
	// then to public.
	SNMPCommunity string `yaml:"snmpCommunity"`

	// Path to the winmem executable.  Defaults to libexec/winmem in the
	// bundle dir.
	ScriptPath string `yaml:"scriptPath"`
	// Command used in place of the script path, e.g. `python3 winmem.py`.
	// The host, version, and community are always appended to it.
	CommandTemplate string `yaml:"commandTemplate"`
	// How long to let the script run before killing it.  0 means no limit.
	TimeoutSeconds int `yaml:"timeoutSeconds" validate:"gte=0"`
}

// Validate the config beyond what the struct tags cover
func (c *Config) Validate() error {
	for _, expr := range []string{c.Component, c.DeviceHostname, c.IPAddress, c.SNMPVer, c.SNMPCommunity} {
		if _, err := c.Device.Eval(expr, c.Device.ID); err != nil {
			return err
		}
	}
	if c.CommandTemplate != "" {
		argv, err := shellquote.Split(c.CommandTemplate)
		if err != nil {
			return errors.Wrapf(err, "could not parse commandTemplate %q", c.CommandTemplate)
		}
		if len(argv) == 0 {
			return errors.New("commandTemplate is blank")
		}
	}
	return nil
}

// Key identifies what is being collected.  Two configs with the same key
// collect the same thing.
type Key struct {
	DeviceID     string
	CycleTime    int
	TemplateID   string
	DatasourceID string
	PluginClass  string
}

func (k Key) String() string {
	return strings.Join([]string{
		k.DeviceID, strconv.Itoa(k.CycleTime), k.TemplateID, k.DatasourceID, k.PluginClass,
	}, "/")
}

// Key returns the collection key of this config
func (c *Config) Key() Key {
	return Key{
		DeviceID:     c.Device.ID,
		CycleTime:    c.IntervalSeconds,
		TemplateID:   c.TemplateID,
		DatasourceID: c.DatasourceID,
		PluginClass:  pluginClassName,
	}
}

// ConfigKey is used by the monitor manager to keep from running two monitors
// that collect the same thing.
func (c *Config) ConfigKey() string {
	k := c.Key()
	logger.WithField("key", k).Debug("Config key")
	return k.String()
}

func (c *Config) commandPrefix() ([]string, error) {
	if c.CommandTemplate != "" {
		return shellquote.Split(c.CommandTemplate)
	}
	if c.ScriptPath != "" {
		return []string{c.ScriptPath}, nil
	}
	return []string{defaultScriptPath(c.BundleDir)}, nil
}

func defaultScriptPath(bundleDir string) string {
	name := "winmem"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(bundleDir, "libexec", name)
}

func (c *Config) String() string {
	return fmt.Sprintf("%s(%s)", monitorType, c.Key())
}
