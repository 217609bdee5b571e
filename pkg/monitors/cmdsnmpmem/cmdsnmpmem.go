package cmdsnmpmem

import (
	"context"
	"strconv"
	"time"

	"github.com/signalfx/golib/v3/datapoint"
	"github.com/signalfx/golib/v3/event"
	log "github.com/sirupsen/logrus"

	"github.com/signalfx/winsnmp-agent/pkg/monitors"
	"github.com/signalfx/winsnmp-agent/pkg/monitors/types"
	"github.com/signalfx/winsnmp-agent/pkg/utils/cmdrunner"
)

var logger = log.WithFields(log.Fields{"monitorType": monitorType})

func init() {
	monitors.Register(&monitorMetadata, func() interface{} { return &Monitor{} }, &Config{})
}

// Monitor that collects memory and paging usage of Windows hosts by running
// the winmem script against them.
type Monitor struct {
	Output types.Output

	ds            *DataSource
	collectConfig *CollectConfig
	plugin        *Plugin
	logger        log.FieldLogger
}

// Configure the monitor
func (m *Monitor) Configure(conf *Config) error {
	m.logger = logger.WithFields(log.Fields{"monitorID": conf.MonitorID, "device": conf.Device.ID})

	params, err := BuildParams(conf)
	if err != nil {
		return err
	}

	component, err := conf.Device.Eval(conf.Component, conf.Device.ID)
	if err != nil {
		return err
	}

	m.ds = newDataSource(conf.DatasourceID)
	m.ds.Component = component
	m.ds.EventClass = conf.EventClass
	m.ds.CycleTime = conf.IntervalSeconds
	m.ds.AddDataPoints()

	m.collectConfig = &CollectConfig{
		ID: conf.Device.ID,
		Datasources: []*DatasourceConfig{{
			ID:         m.ds.ID,
			Component:  m.ds.Component,
			EventClass: m.ds.EventClass,
			CycleTime:  m.ds.CycleTime,
			Params:     params,
		}},
	}

	m.plugin = NewPlugin(&cmdrunner.Runner{
		Timeout: time.Duration(conf.TimeoutSeconds) * time.Second,
		Logger:  m.logger,
	}, m.logger)

	return nil
}

// Collect runs one collection cycle and sends what it produced.  Failures
// are still reported as an event before the error is returned.
func (m *Monitor) Collect(ctx context.Context) error {
	data, err := m.plugin.Run(ctx, m.collectConfig)
	if data != nil {
		m.sendData(data)
	}
	return err
}

func (m *Monitor) sendData(data *Data) {
	ds := m.collectConfig.Datasources[0]
	now := time.Now()

	var dps []*datapoint.Datapoint
	for component, values := range data.Values {
		if component == "" {
			component = ds.Component
		}
		for id, raw := range values {
			dp := m.makeDatapoint(id, raw, component, now)
			if dp != nil {
				dps = append(dps, dp)
			}
		}
	}
	if len(dps) > 0 {
		m.Output.SendDatapoints(dps...)
	}

	for i := range data.Events {
		m.Output.SendEvent(m.makeEvent(&data.Events[i], now))
	}
}

func (m *Monitor) makeDatapoint(id, raw, component string, now time.Time) *datapoint.Datapoint {
	val, err := parseValue(raw)
	if err != nil {
		m.logger.WithError(err).Warnf("Skipping datapoint %s with non-numeric value %q", id, raw)
		return nil
	}

	typ := datapoint.Gauge
	if dpDef, ok := m.ds.DataPoint(id); ok {
		if dpDef.RRDType == Derive {
			typ = datapoint.Counter
		}
	} else {
		m.logger.Debugf("Datapoint %s is not defined by the datasource, sending it as a gauge", id)
	}

	return datapoint.New(id, map[string]string{
		"device":     m.collectConfig.ID,
		"component":  component,
		"datasource": m.ds.ID,
	}, val, typ, now)
}

func (m *Monitor) makeEvent(ev *Event, now time.Time) *event.Event {
	device := ev.Device
	if device == "" {
		device = m.collectConfig.ID
	}
	component := ev.Component
	if component == "" {
		component = m.ds.Component
	}
	eventClass := ev.EventClass
	if eventClass == "" {
		eventClass = m.ds.EventClass
	}

	return event.NewWithProperties(
		eventClass,
		event.AGENT,
		map[string]string{
			"device":     device,
			"component":  component,
			"eventKey":   ev.EventKey,
			"severity":   strconv.Itoa(ev.Severity),
			"datasource": m.ds.ID,
		},
		map[string]interface{}{
			"summary":  ev.Summary,
			"message":  ev.Message,
			"severity": ev.Severity,
		},
		now)
}

func parseValue(raw string) (datapoint.Value, error) {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return datapoint.NewIntValue(i), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return datapoint.NewFloatValue(f), nil
}

// Shutdown the monitor.  Any running collection is stopped by the active
// monitor cancelling its context.
func (m *Monitor) Shutdown() {
	if m.logger != nil {
		m.logger.Debug("Shutting down")
	}
}
