package cmdrunner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not runnable on windows")
	}
	path := filepath.Join(t.TempDir(), "script.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestRun(t *testing.T) {
	t.Run("captures stdout on success", func(t *testing.T) {
		script := writeScript(t, `echo "OK|MemoryTotal=$1"; echo warn >&2`)
		r := &Runner{}

		res, err := r.Run(context.Background(), []string{script, "100"})
		require.NoError(t, err)
		require.Equal(t, "OK|MemoryTotal=100\n", string(res.Stdout))
		require.Equal(t, "warn\n", string(res.Stderr))
		require.Equal(t, 0, res.ExitCode)
	})

	t.Run("nonzero exit returns stderr as the error", func(t *testing.T) {
		script := writeScript(t, `echo "Timeout: No Response from host" >&2; exit 2`)
		r := &Runner{}

		res, err := r.Run(context.Background(), []string{script})
		require.Error(t, err)

		var exitErr *ExitError
		require.True(t, errors.As(err, &exitErr))
		require.Equal(t, 2, exitErr.ExitCode)
		require.Equal(t, "Timeout: No Response from host", exitErr.Error())
		require.Equal(t, 2, res.ExitCode)
	})

	t.Run("nonzero exit with empty stderr", func(t *testing.T) {
		script := writeScript(t, `exit 3`)
		_, err := (&Runner{}).Run(context.Background(), []string{script})
		require.EqualError(t, err, "exit status 3")
	})

	t.Run("missing executable", func(t *testing.T) {
		_, err := (&Runner{}).Run(context.Background(), []string{filepath.Join(t.TempDir(), "nope")})
		require.Error(t, err)

		var exitErr *ExitError
		require.False(t, errors.As(err, &exitErr))
	})

	t.Run("empty command", func(t *testing.T) {
		_, err := (&Runner{}).Run(context.Background(), nil)
		require.Error(t, err)
	})

	t.Run("timeout", func(t *testing.T) {
		script := writeScript(t, `exec sleep 5`)
		r := &Runner{Timeout: 50 * time.Millisecond}

		_, err := r.Run(context.Background(), []string{script})
		require.Error(t, err)
		require.Contains(t, err.Error(), "timed out")
	})
}
