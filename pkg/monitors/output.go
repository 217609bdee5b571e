package monitors

import (
	"github.com/signalfx/golib/v3/datapoint"
	"github.com/signalfx/golib/v3/event"

	"github.com/signalfx/winsnmp-agent/pkg/core/common/dpmeta"
	"github.com/signalfx/winsnmp-agent/pkg/monitors/types"
	"github.com/signalfx/winsnmp-agent/pkg/utils"
)

// The default implementation of Output
type monitorOutput struct {
	monitorType string
	monitorID   types.MonitorID
	configHash  uint64
	dpChan      chan<- []*datapoint.Datapoint
	eventChan   chan<- *event.Event
	extraDims   map[string]string
}

var _ types.Output = &monitorOutput{}

// Copy the output so that you can attach a different set of dimensions to it.
func (mo *monitorOutput) Copy() types.Output {
	o := *mo
	o.extraDims = utils.CloneStringMap(mo.extraDims)
	return &o
}

func (mo *monitorOutput) SendDatapoints(dps ...*datapoint.Datapoint) {
	if len(dps) == 0 {
		return
	}

	for i := range dps {
		mo.preprocessDP(dps[i])
	}

	mo.dpChan <- dps
}

func (mo *monitorOutput) preprocessDP(dp *datapoint.Datapoint) {
	if dp.Meta == nil {
		dp.Meta = map[interface{}]interface{}{}
	}

	dp.Meta[dpmeta.MonitorIDMeta] = mo.monitorID
	dp.Meta[dpmeta.MonitorTypeMeta] = mo.monitorType
	dp.Meta[dpmeta.ConfigHashMeta] = mo.configHash

	dp.Dimensions = utils.MergeStringMaps(dp.Dimensions, mo.extraDims)
}

func (mo *monitorOutput) SendEvent(event *event.Event) {
	event.Dimensions = utils.MergeStringMaps(event.Dimensions, mo.extraDims)
	mo.eventChan <- event
}

// AddExtraDimension can be called by monitors *before* datapoints are flowing
// to add an extra dimension value to all datapoints coming out of this output.
// This method is not thread-safe!
func (mo *monitorOutput) AddExtraDimension(key, value string) {
	mo.extraDims[key] = value
}

// RemoveExtraDimension will remove any dimension added to this output, either
// from the original configuration or from the AddExtraDimensions method.
// This method is not thread-safe!
func (mo *monitorOutput) RemoveExtraDimension(key string) {
	delete(mo.extraDims, key)
}
