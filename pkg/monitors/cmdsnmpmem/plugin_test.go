package cmdsnmpmem

import (
	"context"
	"errors"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalfx/winsnmp-agent/pkg/utils/cmdrunner"
)

type fakeRunner struct {
	stdout string
	err    error
	cmds   [][]string
}

func (r *fakeRunner) Run(ctx context.Context, cmd []string) (*cmdrunner.Result, error) {
	r.cmds = append(r.cmds, cmd)
	if r.err != nil {
		return &cmdrunner.Result{}, r.err
	}
	return &cmdrunner.Result{Stdout: []byte(r.stdout)}, nil
}

func testCollectConfig() *CollectConfig {
	return &CollectConfig{
		ID: "win01",
		Datasources: []*DatasourceConfig{{
			ID:     "CmdSnmpMem",
			Params: &Params{Cmd: []string{"winmem", "10.0.0.5", "v1", "public"}},
		}},
	}
}

func TestPluginSuccess(t *testing.T) {
	runner := &fakeRunner{stdout: "OK - memory usage 50.00%|MemoryTotal=100 MemoryUsed=50\n"}
	p := NewPlugin(runner, log.StandardLogger())

	data, err := p.Run(context.Background(), testCollectConfig())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"winmem", "10.0.0.5", "v1", "public"}}, runner.cmds)

	assert.Equal(t, map[string]map[string]string{
		"": {"MemoryTotal": "100", "MemoryUsed": "50"},
	}, data.Values)
	assert.Empty(t, data.Maps)
	require.Len(t, data.Events, 1)
	assert.Equal(t, Event{
		Device:     "win01",
		Summary:    "Snmp memory data gathered using winmem script",
		Severity:   SeverityDebug,
		EventClass: "/App",
		EventKey:   "CmdSnmpMem",
	}, data.Events[0])
}

func TestPluginNonzeroExit(t *testing.T) {
	runner := &fakeRunner{err: &cmdrunner.ExitError{ExitCode: 1, Stderr: "Request timeout\n"}}
	p := NewPlugin(runner, log.StandardLogger())

	data, err := p.Run(context.Background(), testCollectConfig())
	require.Error(t, err)

	assert.Empty(t, data.Values)
	require.Len(t, data.Events, 1)
	assert.Equal(t, Event{
		Device:   "win01",
		Summary:  "Error getting Snmp memory data: Request timeout",
		Severity: SeverityError,
		EventKey: "CmdSnmpMem",
	}, data.Events[0])
}

func TestPluginMalformedOutput(t *testing.T) {
	p := NewPlugin(&fakeRunner{stdout: "MemoryTotal=100"}, log.StandardLogger())

	data, err := p.Run(context.Background(), testCollectConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResult))
	require.Len(t, data.Events, 1)
	assert.Equal(t, SeverityError, data.Events[0].Severity)
	assert.Contains(t, data.Events[0].Summary, "Error getting Snmp memory data: ")
}

func TestPluginNoDatasources(t *testing.T) {
	p := NewPlugin(&fakeRunner{}, log.StandardLogger())
	data, err := p.Run(context.Background(), &CollectConfig{ID: "win01"})
	require.Error(t, err)
	require.Len(t, data.Events, 1)
}

func TestPluginCallbacksPassThrough(t *testing.T) {
	p := NewPlugin(&fakeRunner{}, log.StandardLogger())
	conf := testCollectConfig()

	assert.Equal(t, "raw", p.OnResult("raw", conf))

	data := &Data{Values: map[string]map[string]string{"": {"a": "1"}}}
	assert.Same(t, data, p.OnComplete(data, conf))

	assert.Equal(t, []string{"zSnmpVer", "zSnmpCommunity"}, p.ProxyAttributes())
}
