package cmdsnmpmem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/signalfx/winsnmp-agent/pkg/core/config"
)

func decodeConfig(t *testing.T, other map[string]interface{}) *Config {
	t.Helper()
	conf := &Config{}
	err := config.DecodeExtraConfig(&config.MonitorConfig{
		Type:            monitorType,
		IntervalSeconds: 120,
		BundleDir:       "/opt/winsnmp",
		OtherConfig:     other,
	}, conf)
	require.NoError(t, err)
	return conf
}
