package cmdsnmpmem

import (
	"github.com/signalfx/winsnmp-agent/pkg/utils"
)

const (
	defaultSnmpVer       = "v1"
	defaultSnmpCommunity = "public"
	unknownHost          = "UnknownHostOrIp"
)

// Params are the rendered collection parameters of a datasource
type Params struct {
	Host          string
	SNMPVer       string
	SNMPCommunity string
	// Copies of the device's zSnmpVer and zSnmpCommunity at the time the
	// params were built
	DeviceSnmpVer       string
	DeviceSnmpCommunity string
	Cmd                 []string
}

// BuildCommand returns the argv that is run to collect memory data.  Empty
// values fall back to the defaults so that a command is always produced, even
// if it cannot succeed.
func BuildCommand(prefix []string, host, snmpVer, snmpCommunity string) []string {
	cmd := make([]string, 0, len(prefix)+3)
	cmd = append(cmd, prefix...)
	return append(cmd,
		utils.FirstNonEmpty(host, unknownHost),
		utils.FirstNonEmpty(snmpVer, defaultSnmpVer),
		utils.FirstNonEmpty(snmpCommunity, defaultSnmpCommunity))
}

// BuildParams renders the config against its device and builds the command
// to run.
func BuildParams(conf *Config) (*Params, error) {
	dev := &conf.Device
	render := func(expr string) (string, error) {
		return dev.Eval(expr, dev.ID)
	}

	ip, err := render(conf.IPAddress)
	if err != nil {
		return nil, err
	}
	hostname, err := render(conf.DeviceHostname)
	if err != nil {
		return nil, err
	}
	ver, err := render(conf.SNMPVer)
	if err != nil {
		return nil, err
	}
	community, err := render(conf.SNMPCommunity)
	if err != nil {
		return nil, err
	}

	prefix, err := conf.commandPrefix()
	if err != nil {
		return nil, err
	}

	// The hostname property stands in for the device id, so the defaults poll
	// manageIp, then title, then id.
	p := &Params{
		Host:                utils.FirstNonEmpty(ip, dev.ManageIP, dev.Title, hostname, dev.ID, unknownHost),
		SNMPVer:             utils.FirstNonEmpty(ver, dev.SnmpVer, defaultSnmpVer),
		SNMPCommunity:       utils.FirstNonEmpty(community, dev.SnmpCommunity, defaultSnmpCommunity),
		DeviceSnmpVer:       dev.SnmpVer,
		DeviceSnmpCommunity: dev.SnmpCommunity,
	}
	p.Cmd = BuildCommand(prefix, p.Host, p.SNMPVer, p.SNMPCommunity)
	return p, nil
}
