// Package dpmeta has metadata keys that are attached to the Meta field of
// datapoints by the monitor output.  They never leave the agent.
package dpmeta

type key int

const (
	// MonitorIDMeta is the monitor instance that generated the datapoint
	MonitorIDMeta key = iota
	// MonitorTypeMeta is the monitor type that generated the datapoint
	MonitorTypeMeta
	// ConfigHashMeta is the hash of the monitor config
	ConfigHashMeta
)
