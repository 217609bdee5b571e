package core

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const agentConfig = `
intervalSeconds: 300
logging:
  level: info
writer:
  mode: log
monitors:
  - type: cmd-snmp-mem
    device: {id: win01, manageIp: 10.0.0.5}
    scriptPath: %s
`

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
}

func TestAgentStartupAndReload(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on Windows")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "winmem")
	writeFile(t, script, "#!/bin/sh\necho 'OK|MemoryTotal=100 MemoryUsed=50'\n", 0755)

	configPath := filepath.Join(dir, "agent.yaml")
	writeFile(t, configPath, fmt.Sprintf(agentConfig, script), 0600)

	agent, err := Startup(configPath, false)
	require.NoError(t, err)
	defer agent.Shutdown()

	stats := agent.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, "cmd-snmp-mem", stats[0].MonitorType)
	assert.Equal(t, "win01/120/WinSnmpMemory/CmdSnmpMem/cmdsnmpmem.Plugin", stats[0].ConfigKey)
	require.Eventually(t, func() bool {
		return agent.Stats()[0].CollectCalls == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, uint64(0), agent.Stats()[0].CollectFailures)

	// A second device is added and the same device is configured twice,
	// which must only be collected once.
	writeFile(t, configPath, fmt.Sprintf(agentConfig, script)+`
  - type: cmd-snmp-mem
    device: {id: win02}
    scriptPath: `+script+`
  - type: cmd-snmp-mem
    device: {id: win01}
    snmpCommunity: other
    scriptPath: `+script+`
`, 0600)

	require.NoError(t, agent.Reload())
	stats = agent.Stats()
	require.Len(t, stats, 2)
	assert.Equal(t, "win02/120/WinSnmpMemory/CmdSnmpMem/cmdsnmpmem.Plugin", stats[1].ConfigKey)
}

func TestAgentStartupBadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "agent.yaml")
	writeFile(t, configPath, "writer:\n  mode: signalfx\n", 0600)

	_, err := Startup(configPath, false)
	require.Error(t, err)

	_, err = Startup(filepath.Join(t.TempDir(), "missing.yaml"), false)
	require.Error(t, err)
}
