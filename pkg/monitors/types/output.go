// Package types holds the types that are shared between the monitor framework
// and the individual monitor implementations.
package types

import (
	"github.com/signalfx/golib/v3/datapoint"
	"github.com/signalfx/golib/v3/event"
)

// MonitorID is a unique identifier for a specific instance of a monitor
type MonitorID string

// Output is the interface that monitors should use to send data to the agent
// core.  It handles adding the proper dimensions and metadata to datapoints so
// that monitors don't have to worry about it themselves.
type Output interface {
	Copy() Output
	SendDatapoints(...*datapoint.Datapoint)
	SendEvent(*event.Event)
	AddExtraDimension(key, value string)
	RemoveExtraDimension(key string)
}
