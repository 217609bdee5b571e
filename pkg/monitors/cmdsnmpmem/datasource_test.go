package cmdsnmpmem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDataPoints(t *testing.T) {
	ds := newDataSource("CmdSnmpMem")
	ds.AddDataPoints()

	dps := ds.DataPoints()
	require.Len(t, dps, 6)

	var ids []string
	for _, dp := range dps {
		ids = append(ids, dp.ID)
	}
	assert.Equal(t, []string{MemoryTotal, MemoryUsed, PagingTotal, PagingUsed, PercentMemoryUsed, PercentPagingUsed}, ids)

	paging, ok := ds.DataPoint(PagingUsed)
	require.True(t, ok)
	assert.Equal(t, Derive, paging.RRDType)
	require.NotNil(t, paging.RRDMin)
	assert.Equal(t, 0.0, *paging.RRDMin)
	assert.Nil(t, paging.RRDMax)
	assert.Equal(t, "Paging used as a counter", paging.Description)

	total, _ := ds.DataPoint(MemoryTotal)
	assert.Equal(t, Gauge, total.RRDType)

	t.Run("is idempotent", func(t *testing.T) {
		paging.Description = "changed"
		ds.AddDataPoints()
		assert.Len(t, ds.DataPoints(), 6)
		dp, _ := ds.DataPoint(PagingUsed)
		assert.Equal(t, "changed", dp.Description)
	})
}

func TestDataSourceSchema(t *testing.T) {
	ds := newDataSource("CmdSnmpMem")
	assert.False(t, ds.Testable())
	assert.Equal(t, "CmdSnmpMemDataSource", ds.SourceType)
	assert.Equal(t, "${here/id}", ds.Component)
	assert.Equal(t, "/Perf/Memory/Snmp", ds.EventClass)
	assert.Equal(t, 120, ds.CycleTime)

	for _, id := range []string{"hostname", "ipAddress", "snmpVer", "snmpCommunity"} {
		p, ok := monitorMetadata.Property(id)
		require.True(t, ok, id)
		assert.Equal(t, "string", p.Type)
		assert.Equal(t, "w", p.Mode)
	}
	assert.True(t, monitorMetadata.HasMetric(PagingUsed))
	assert.Equal(t, 120, monitorMetadata.DefaultIntervalSeconds)
}
