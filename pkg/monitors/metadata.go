package monitors

// MetricMetadata contains a metric's metadata.
type MetricMetadata struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	// Lower bound for the value, used by derived/counter metrics
	Min *float64 `json:"min,omitempty"`
	// Upper bound for the value, nil for unbounded
	Max *float64 `json:"max,omitempty"`
}

// PropMetadata describes one configurable property of a monitor, i.e. one
// field of its datasource schema.
type PropMetadata struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Mode        string `json:"mode"`
	Title       string `json:"title"`
	Group       string `json:"group,omitempty"`
	Description string `json:"description,omitempty"`
}

// Metadata describes a monitor type.
type Metadata struct {
	MonitorType string
	// Doc is a short human readable description of the monitor
	Doc string
	// Used as the interval when the monitor config doesn't set one.  It takes
	// precedence over the agent-wide interval.
	DefaultIntervalSeconds int
	// Whether the monitor sends all of its metrics, not just Metrics
	SendAll    bool
	Metrics    []MetricMetadata
	Properties []PropMetadata
}

// HasMetric returns whether the metric is declared by the monitor
func (m *Metadata) HasMetric(name string) bool {
	for i := range m.Metrics {
		if m.Metrics[i].Name == name {
			return true
		}
	}
	return false
}

// Property returns the named property and whether it was found
func (m *Metadata) Property(id string) (PropMetadata, bool) {
	for _, p := range m.Properties {
		if p.ID == id {
			return p, true
		}
	}
	return PropMetadata{}, false
}
