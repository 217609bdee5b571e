package monitors

import (
	"context"
	"reflect"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/signalfx/winsnmp-agent/pkg/core/config"
	"github.com/signalfx/winsnmp-agent/pkg/monitors/types"
	"github.com/signalfx/winsnmp-agent/pkg/utils"
)

// ActiveMonitor is a wrapper for an actual monitor instance that keeps some
// metadata about the monitor, such as a copy of its configuration and how its
// collection cycles have gone.
type ActiveMonitor struct {
	instance   interface{}
	id         types.MonitorID
	configHash uint64
	configKey  string
	output     types.Output
	config     config.MonitorCustomConfig
	// cancel function for the parent context if it is a Collectable instance
	cancel context.CancelFunc

	collectFailures  atomic.Uint64
	collectCalls     atomic.Uint64
	intervalExceeded atomic.Uint64
}

// Stats is a snapshot of the collection counters of an active monitor
type Stats struct {
	MonitorID        types.MonitorID
	MonitorType      string
	ConfigKey        string
	CollectCalls     uint64
	CollectFailures  uint64
	IntervalExceeded uint64
}

// Does some reflection magic to pass the right type to the Configure method of
// each monitor
func (am *ActiveMonitor) configureMonitor(monConfig config.MonitorCustomConfig) error {
	monConfig.MonitorConfigCore().MonitorID = am.id
	for k, v := range monConfig.MonitorConfigCore().ExtraDimensions {
		am.output.AddExtraDimension(k, v)
	}

	if err := validateConfig(monConfig); err != nil {
		return err
	}

	am.config = monConfig
	am.injectOutputIfNeeded()

	if err := config.CallConfigure(am.instance, monConfig); err != nil {
		return errors.Wrapf(err, "could not configure monitor %s", am.id)
	}

	if mon, ok := am.instance.(Collectable); ok {
		var ctx context.Context
		ctx, am.cancel = context.WithCancel(context.Background())
		interval := time.Duration(monConfig.MonitorConfigCore().IntervalSeconds) * time.Second
		logger := log.WithFields(log.Fields{
			"monitorType": monConfig.MonitorConfigCore().Type,
			"monitorID":   am.id,
		})

		// The first collection must not run on the caller's goroutine, which
		// holds the manager lock.  A hung command is stopped by cancelling ctx.
		go utils.RunOnInterval(ctx, func() {
			am.runCollect(ctx, mon, interval, logger)
		}, interval)
	}

	return nil
}

func (am *ActiveMonitor) runCollect(ctx context.Context, mon Collectable, interval time.Duration, logger log.FieldLogger) {
	start := time.Now()
	if err := mon.Collect(ctx); err != nil {
		am.collectFailures.Inc()
		logger.WithError(err).Error("Collecting data from monitor failed")
	}
	am.collectCalls.Inc()
	elapsed := time.Since(start)

	if elapsed > interval {
		am.intervalExceeded.Inc()
		logger.Warnf("Monitor took too long to run (%s) which will cause lagging datapoints", elapsed)
	}
}

func (am *ActiveMonitor) injectOutputIfNeeded() bool {
	outputValue := utils.FindFieldWithEmbeddedStructs(am.instance, "Output",
		reflect.TypeOf((*types.Output)(nil)).Elem())

	if !outputValue.IsValid() {
		return false
	}

	outputValue.Set(reflect.ValueOf(am.output))

	return true
}

// Stats returns the current collection counters
func (am *ActiveMonitor) Stats() Stats {
	var monitorType string
	if am.config != nil {
		monitorType = am.config.MonitorConfigCore().Type
	}
	return Stats{
		MonitorID:        am.id,
		MonitorType:      monitorType,
		ConfigKey:        am.configKey,
		CollectCalls:     am.collectCalls.Load(),
		CollectFailures:  am.collectFailures.Load(),
		IntervalExceeded: am.intervalExceeded.Load(),
	}
}

// Shutdown calls Shutdown on the monitor instance if it is provided.
func (am *ActiveMonitor) Shutdown() {
	if am.cancel != nil {
		am.cancel()
	}

	if sh, ok := am.instance.(Shutdownable); ok {
		sh.Shutdown()
	}
}
