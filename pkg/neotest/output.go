// Package neotest holds helpers for testing monitors without the rest of the
// agent running.
package neotest

import (
	"time"

	"github.com/signalfx/golib/v3/datapoint"
	"github.com/signalfx/golib/v3/event"

	"github.com/signalfx/winsnmp-agent/pkg/monitors/types"
	"github.com/signalfx/winsnmp-agent/pkg/utils"
)

// TestOutput can be used in place of the normal monitor outut to provide a
// simpler way of testing monitor output.
type TestOutput struct {
	dpChan    chan *datapoint.Datapoint
	eventChan chan *event.Event
	extraDims map[string]string
}

var _ types.Output = &TestOutput{}

// NewTestOutput creates a new initialized TestOutput instance
func NewTestOutput() *TestOutput {
	return &TestOutput{
		dpChan:    make(chan *datapoint.Datapoint, 1000),
		eventChan: make(chan *event.Event, 1000),
		extraDims: map[string]string{},
	}
}

// Copy the output object
func (to *TestOutput) Copy() types.Output {
	return to
}

// SendDatapoints accepts datapoints and sticks them in a buffered queue
func (to *TestOutput) SendDatapoints(dps ...*datapoint.Datapoint) {
	for i := range dps {
		dps[i].Dimensions = utils.MergeStringMaps(dps[i].Dimensions, to.extraDims)
		to.dpChan <- dps[i]
	}
}

// SendEvent accepts an event and sticks it in a buffered queue
func (to *TestOutput) SendEvent(event *event.Event) {
	event.Dimensions = utils.MergeStringMaps(event.Dimensions, to.extraDims)
	to.eventChan <- event
}

// AddExtraDimension adds a dimension to everything sent afterwards
func (to *TestOutput) AddExtraDimension(key, value string) {
	to.extraDims[key] = value
}

// RemoveExtraDimension removes a dimension added with AddExtraDimension
func (to *TestOutput) RemoveExtraDimension(key string) {
	delete(to.extraDims, key)
}

// FlushDatapoints returns all of the datapoints injected into the channel so
// far.
func (to *TestOutput) FlushDatapoints() []*datapoint.Datapoint {
	var out []*datapoint.Datapoint
	for {
		select {
		case dp := <-to.dpChan:
			out = append(out, dp)
		default:
			return out
		}
	}
}

// FlushEvents returns all of the events injected into the channel so far.
func (to *TestOutput) FlushEvents() []*event.Event {
	var out []*event.Event
	for {
		select {
		case event := <-to.eventChan:
			out = append(out, event)
		default:
			return out
		}
	}
}

// WaitForDPs will keep pulling datapoints off of the internal queue until it
// either gets the expected count or waitSeconds seconds have elapsed.  It then
// returns those datapoints.  It will never return more than 'count' datapoints.
func (to *TestOutput) WaitForDPs(count, waitSeconds int) []*datapoint.Datapoint {
	var dps []*datapoint.Datapoint
	timeout := time.After(time.Duration(waitSeconds) * time.Second)

loop:
	for {
		select {
		case dp := <-to.dpChan:
			dps = append(dps, dp)
			if len(dps) >= count {
				break loop
			}
		case <-timeout:
			break loop
		}
	}

	return dps
}

// WaitForEvents is the event counterpart of WaitForDPs
func (to *TestOutput) WaitForEvents(count, waitSeconds int) []*event.Event {
	var events []*event.Event
	timeout := time.After(time.Duration(waitSeconds) * time.Second)

loop:
	for {
		select {
		case ev := <-to.eventChan:
			events = append(events, ev)
			if len(events) >= count {
				break loop
			}
		case <-timeout:
			break loop
		}
	}

	return events
}
