package cmdsnmpmem

import (
	"github.com/signalfx/winsnmp-agent/pkg/monitors"
)

const (
	monitorType       = "cmd-snmp-mem"
	sourceType        = "CmdSnmpMemDataSource"
	pluginClassName   = "cmdsnmpmem.Plugin"
	defaultEventClass = "/Perf/Memory/Snmp"
	defaultCycleTime  = 120
	propertyGroup     = "CmdSnmpMemDataSource"
)

var zero = 0.0

var monitorMetadata = monitors.Metadata{
	MonitorType:            monitorType,
	Doc:                    "Get RAM and Paging data for Windows devices using SNMP",
	DefaultIntervalSeconds: defaultCycleTime,
	SendAll:                true,
	Metrics: []monitors.MetricMetadata{
		{Name: MemoryTotal, Type: "gauge", Description: "Total physical memory in bytes"},
		{Name: MemoryUsed, Type: "gauge", Description: "Physical memory in use in bytes"},
		{Name: PercentMemoryUsed, Type: "gauge", Description: "Percent of physical memory in use"},
		{Name: PagingTotal, Type: "gauge", Description: "Total paging space in bytes"},
		{Name: PagingUsed, Type: "cumulative", Description: "Paging used as a counter", Min: &zero},
		{Name: PercentPagingUsed, Type: "gauge", Description: "Percent of paging space in use"},
	},
	Properties: []monitors.PropMetadata{
		{ID: "hostname", Type: "string", Mode: "w", Title: "Hostname", Group: propertyGroup},
		{ID: "ipAddress", Type: "string", Mode: "w", Title: "IP Address", Group: propertyGroup},
		{ID: "snmpVer", Type: "string", Mode: "w", Title: "SNMP Version", Group: propertyGroup},
		{ID: "snmpCommunity", Type: "string", Mode: "w", Title: "SNMP Community", Group: propertyGroup},
		{ID: "cycletime", Type: "int", Mode: "w", Title: "Cycle Time (seconds)"},
	},
}
