package cmdsnmpmem

import (
	"sort"
)

// RRDType is how the time series store treats a datapoint
type RRDType string

const (
	// Gauge values are stored as is
	Gauge RRDType = "GAUGE"
	// Derive values are stored as the rate of change between samples
	Derive RRDType = "DERIVE"
)

// Names of the datapoints reported by the winmem script
const (
	MemoryTotal       = "MemoryTotal"
	MemoryUsed        = "MemoryUsed"
	PercentMemoryUsed = "PercentMemoryUsed"
	PagingTotal       = "PagingTotal"
	PagingUsed        = "PagingUsed"
	PercentPagingUsed = "PercentPagingUsed"
)

// DataPoint is one named series that the datasource fills
type DataPoint struct {
	ID          string
	RRDType     RRDType
	RRDMin      *float64
	RRDMax      *float64
	Description string
}

// DataSource is the collection unit: what to collect and how often.
type DataSource struct {
	ID         string
	SourceType string
	Component  string
	EventClass string
	// Seconds between collections
	CycleTime int

	datapoints map[string]*DataPoint
}

func newDataSource(id string) *DataSource {
	return &DataSource{
		ID:         id,
		SourceType: sourceType,
		Component:  "${here/id}",
		EventClass: defaultEventClass,
		CycleTime:  defaultCycleTime,
		datapoints: map[string]*DataPoint{},
	}
}

// AddDataPoints creates the datapoints this datasource reports, leaving any
// that already exist alone.
func (ds *DataSource) AddDataPoints() {
	for _, id := range []string{MemoryTotal, MemoryUsed, PercentMemoryUsed, PagingTotal} {
		ds.addDataPointIfMissing(&DataPoint{ID: id, RRDType: Gauge})
	}

	// rrdmin must be lower than rrdmax, so there is no max.
	min := 0.0
	ds.addDataPointIfMissing(&DataPoint{
		ID:          PagingUsed,
		RRDType:     Derive,
		RRDMin:      &min,
		Description: "Paging used as a counter",
	})

	ds.addDataPointIfMissing(&DataPoint{ID: PercentPagingUsed, RRDType: Gauge})
}

func (ds *DataSource) addDataPointIfMissing(dp *DataPoint) {
	if _, ok := ds.datapoints[dp.ID]; ok {
		return
	}
	ds.datapoints[dp.ID] = dp
}

// DataPoint returns the datapoint with the given id
func (ds *DataSource) DataPoint(id string) (*DataPoint, bool) {
	dp, ok := ds.datapoints[id]
	return dp, ok
}

// DataPoints returns all datapoints sorted by ID
func (ds *DataSource) DataPoints() []*DataPoint {
	out := make([]*DataPoint, 0, len(ds.datapoints))
	for _, dp := range ds.datapoints {
		out = append(out, dp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Testable reports whether the datasource can be run ad hoc from the UI.
// Running it requires the full collection config, so it can't.
func (ds *DataSource) Testable() bool {
	return false
}
