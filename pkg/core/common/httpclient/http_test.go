package httpclient

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	h := &HTTPConfig{TimeoutSeconds: 5, SkipVerify: true}
	client, err := h.Build()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, client.Timeout)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.True(t, transport.TLSClientConfig.InsecureSkipVerify)
	assert.Nil(t, transport.TLSClientConfig.RootCAs)
}

func TestBuildBadCACert(t *testing.T) {
	_, err := (&HTTPConfig{CACertPath: filepath.Join(t.TempDir(), "missing.pem")}).Build()
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(path, []byte("not a cert"), 0600))
	_, err = (&HTTPConfig{CACertPath: path}).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not the right format")
}
