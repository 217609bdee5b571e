package config

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAMLDefaults(t *testing.T) {
	conf, err := LoadYAML([]byte(`
hostname: agent01
bundleDir: /opt/winsnmp
monitors:
  - type: cmd-snmp-mem
    device:
      id: win01
`))
	require.NoError(t, err)

	assert.Equal(t, 300, conf.IntervalSeconds)
	assert.Equal(t, "info", conf.Logging.Level)
	assert.Equal(t, "text", conf.Logging.Format)
	assert.Equal(t, "log", conf.Writer.Mode)
	assert.Equal(t, "https://ingest.signalfx.com", conf.Writer.IngestURL)
	assert.Equal(t, 1, conf.Writer.EventSendIntervalSeconds)
	assert.Equal(t, 1000, conf.Writer.DatapointMaxBatchSize)
	assert.NotNil(t, conf.GlobalDimensions)
	assert.Equal(t, map[string]string{"host": "agent01"}, conf.Writer.GlobalDimensions)

	require.Len(t, conf.Monitors, 1)
	mon := conf.Monitors[0]
	assert.Equal(t, "cmd-snmp-mem", mon.Type)
	assert.Equal(t, "/opt/winsnmp", mon.BundleDir)
	assert.Equal(t, map[interface{}]interface{}{"id": "win01"}, mon.OtherConfig["device"])
}

func TestLoadYAMLEnvVars(t *testing.T) {
	os.Setenv("WINSNMP_TEST_TOKEN", "s3cr3t")
	defer os.Unsetenv("WINSNMP_TEST_TOKEN")

	conf, err := LoadYAML([]byte(`
writer:
  mode: signalfx
  signalFxAccessToken: ${WINSNMP_TEST_TOKEN}
globalDimensions:
  env: prod
monitors:
  - type: cmd-snmp-mem
    snmpCommunity: ${dev/zSnmpCommunity}
`))
	require.NoError(t, err)

	assert.Equal(t, "s3cr3t", conf.Writer.SignalFxAccessToken)
	assert.Equal(t, "prod", conf.Writer.GlobalDimensions["env"])
	assert.Equal(t, "${dev/zSnmpCommunity}", conf.Monitors[0].OtherConfig["snmpCommunity"])
}

func TestLoadYAMLHostDimension(t *testing.T) {
	conf, err := LoadYAML([]byte(`
hostname: agent01
globalDimensions:
  host: custom
`))
	require.NoError(t, err)
	assert.Equal(t, "custom", conf.Writer.GlobalDimensions["host"], "explicit host dimension wins")
	assert.Equal(t, map[string]string{"host": "custom"}, conf.GlobalDimensions)

	conf, err = LoadYAML([]byte(`
hostname: agent01
disableHostDimensions: true
`))
	require.NoError(t, err)
	assert.NotContains(t, conf.Writer.GlobalDimensions, "host")

	conf, err = LoadYAML([]byte("intervalSeconds: 10\n"))
	require.NoError(t, err)
	assert.NotEmpty(t, conf.Hostname, "hostname is detected when not set")
	assert.Equal(t, conf.Hostname, conf.Writer.GlobalDimensions["host"])
}

func TestLoadYAMLErrors(t *testing.T) {
	cases := map[string]string{
		"unknown top-level key": "notAKey: 1\n",
		"bad interval":          "intervalSeconds: -5\n",
		"bad log level":         "logging:\n  level: loud\n",
		"bad log format":        "logging:\n  format: xml\n",
		"bad writer mode":       "writer:\n  mode: kafka\n",
		"signalfx needs token":  "writer:\n  mode: signalfx\n",
		"monitor without type":  "monitors:\n  - device: {id: a}\n",
	}
	for name, content := range cases {
		content := content
		t.Run(name, func(t *testing.T) {
			_, err := LoadYAML([]byte(content))
			require.Error(t, err)
		})
	}
}

func TestLoadYAMLErrorContext(t *testing.T) {
	_, err := LoadYAML([]byte("hostname: a\nmonitors: 5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2: monitors: 5")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	require.NoError(t, os.WriteFile(path, []byte("intervalSeconds: 60\n"), 0600))

	conf, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 60, conf.IntervalSeconds)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestBundleDirFromExecutable(t *testing.T) {
	assert.Equal(t, filepath.Join("/opt", "winsnmp"), bundleDirFromExecutable(filepath.Join("/opt", "winsnmp", "bin", "agent")))
}

func TestLogConfig(t *testing.T) {
	lc := &LogConfig{Level: "debug"}
	level, err := lc.LogrusLevel()
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)

	lc = &LogConfig{}
	level, err = lc.LogrusLevel()
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, level)

	assert.IsType(t, &log.JSONFormatter{}, (&LogConfig{Format: "json"}).LogrusFormatter())
	assert.Error(t, (&LogConfig{Level: "chatty"}).Validate())
}

type testMonitorConfig struct {
	MonitorConfig
	Host  string `yaml:"host" default:"localhost"`
	Count int    `yaml:"count"`
}

type testMonitor struct {
	conf *testMonitorConfig
}

func (m *testMonitor) Configure(conf *testMonitorConfig) error {
	m.conf = conf
	return nil
}

type wrongArgMonitor struct{}

func (m *wrongArgMonitor) Configure(conf *MonitorConfig) error { return nil }

func TestDecodeExtraConfig(t *testing.T) {
	in := &MonitorConfig{
		Type:            "test",
		IntervalSeconds: 10,
		OtherConfig:     map[string]interface{}{"count": 3},
	}

	out := &testMonitorConfig{}
	require.NoError(t, DecodeExtraConfig(in, out))
	assert.Equal(t, 3, out.Count)
	assert.Equal(t, "localhost", out.Host)
	assert.Equal(t, 10, out.IntervalSeconds)
	assert.Equal(t, "test", out.Type)

	in.OtherConfig["extra"] = true
	require.Error(t, DecodeExtraConfig(in, &testMonitorConfig{}))
}

func TestCallConfigure(t *testing.T) {
	conf := &testMonitorConfig{Host: "a"}

	mon := &testMonitor{}
	require.NoError(t, CallConfigure(mon, conf))
	assert.Same(t, conf, mon.conf)

	assert.Error(t, CallConfigure(&wrongArgMonitor{}, conf))
	assert.Error(t, CallConfigure(&struct{}{}, conf))
}

func TestMonitorConfigHash(t *testing.T) {
	a := MonitorConfig{Type: "x", OtherConfig: map[string]interface{}{"a": 1}}
	b := MonitorConfig{Type: "x", OtherConfig: map[string]interface{}{"a": 1}, MonitorID: "x-1"}
	c := MonitorConfig{Type: "x", OtherConfig: map[string]interface{}{"a": 2}}

	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
	assert.True(t, a.Equals(&b))
	assert.False(t, a.Equals(&c))
}
