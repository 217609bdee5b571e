package cmdsnmpmem

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/signalfx/winsnmp-agent/pkg/utils/cmdrunner"
)

const eventKey = "CmdSnmpMem"

// Event severities
const (
	SeverityClear    = 0
	SeverityDebug    = 1
	SeverityInfo     = 2
	SeverityWarning  = 3
	SeverityError    = 4
	SeverityCritical = 5
)

// Event is raised by the plugin against the device
type Event struct {
	Device     string
	Component  string
	Summary    string
	Message    string
	Severity   int
	EventClass string
	EventKey   string
}

// Data is what a collection cycle produces.  Values is keyed by component
// ID, with "" being the device itself, and then by datapoint ID.
type Data struct {
	Values map[string]map[string]string
	Events []Event
	Maps   []interface{}
}

func newData() *Data {
	return &Data{
		Values: map[string]map[string]string{},
	}
}

// DatasourceConfig is a single datasource as the plugin sees it at collection
// time
type DatasourceConfig struct {
	ID         string
	Component  string
	EventClass string
	CycleTime  int
	Params     *Params
}

// CollectConfig is everything the plugin needs for one collection
type CollectConfig struct {
	// The device ID
	ID          string
	Datasources []*DatasourceConfig
}

// Runner runs a command to completion
type Runner interface {
	Run(ctx context.Context, cmd []string) (*cmdrunner.Result, error)
}

// Plugin runs the winmem script and turns what it prints into datapoints and
// events.
type Plugin struct {
	runner Runner
	logger log.FieldLogger
}

// NewPlugin makes a plugin that runs commands with runner
func NewPlugin(runner Runner, logger log.FieldLogger) *Plugin {
	return &Plugin{
		runner: runner,
		logger: logger,
	}
}

// ProxyAttributes are the device properties copied into the collection
// config
func (p *Plugin) ProxyAttributes() []string {
	return []string{"zSnmpVer", "zSnmpCommunity"}
}

// Collect runs the command of the first datasource and returns its stdout.
// Any nonzero exit is an error that carries the stderr of the command.
func (p *Plugin) Collect(ctx context.Context, conf *CollectConfig) (string, error) {
	if len(conf.Datasources) == 0 {
		return "", errors.New("no datasources to collect")
	}
	cmd := conf.Datasources[0].Params.Cmd

	res, err := p.runner.Run(ctx, cmd)
	if err != nil {
		return "", err
	}
	return string(res.Stdout), nil
}

// OnResult is called with the raw result before it is processed
func (p *Plugin) OnResult(result string, conf *CollectConfig) string {
	p.logger.WithField("device", conf.ID).Debugf("Result: %s", strings.TrimSpace(result))
	return result
}

// OnSuccess parses the result into datapoint values for the device and
// raises a debug event saying so.
func (p *Plugin) OnSuccess(result string, conf *CollectConfig) (*Data, error) {
	values, err := ParseResult(result)
	if err != nil {
		return nil, err
	}

	data := newData()
	data.Values[""] = values
	data.Events = append(data.Events, Event{
		Device:     conf.ID,
		Summary:    "Snmp memory data gathered using winmem script",
		Severity:   SeverityDebug,
		EventClass: "/App",
		EventKey:   eventKey,
	})
	return data, nil
}

// OnError raises an error event for the device with the reason for the
// failure.
func (p *Plugin) OnError(err error, conf *CollectConfig) *Data {
	p.logger.WithError(err).WithField("device", conf.ID).Debug("Collection failed")

	data := newData()
	data.Events = append(data.Events, Event{
		Device:   conf.ID,
		Summary:  fmt.Sprintf("Error getting Snmp memory data: %s", err),
		Severity: SeverityError,
		EventKey: eventKey,
	})
	return data
}

// OnComplete is called last with whatever the success or error path made
func (p *Plugin) OnComplete(data *Data, conf *CollectConfig) *Data {
	return data
}

// Run does one full collection, calling each callback in order.  The error
// is non-nil if the data came from OnError.
func (p *Plugin) Run(ctx context.Context, conf *CollectConfig) (*Data, error) {
	var data *Data
	result, err := p.Collect(ctx, conf)
	if err == nil {
		data, err = p.OnSuccess(p.OnResult(result, conf), conf)
	}
	if err != nil {
		data = p.OnError(err, conf)
	}
	return p.OnComplete(data, conf), err
}
