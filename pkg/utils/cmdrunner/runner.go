// Package cmdrunner runs an external command to completion and captures its
// output.  It is used by monitors that delegate the actual collection to a
// script and only care about what the script printed.
package cmdrunner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Result holds everything that the command wrote before exiting.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// ExitError is returned when the command ran but exited with a nonzero code.
// Stderr is the payload that callers should report.
type ExitError struct {
	Cmd      []string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = fmt.Sprintf("exit status %d", e.ExitCode)
	}
	return msg
}

// Runner runs commands.  The zero value has no timeout.
type Runner struct {
	// Timeout bounds how long a single command may run.  Zero means the
	// command runs until it exits or the context is cancelled.
	Timeout time.Duration
	Logger  log.FieldLogger
}

// Run executes cmd[0] with the remaining elements as arguments and blocks
// until it exits.  A nonzero exit code yields an *ExitError along with the
// captured result.  Failure to start the command at all (e.g. a missing
// executable) is returned as is.
func (r *Runner) Run(ctx context.Context, cmd []string) (*Result, error) {
	if len(cmd) == 0 {
		return nil, errors.New("no command given")
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, cmd[0], cmd[1:]...)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	r.logger().WithFields(log.Fields{"cmd": cmd[0], "args": len(cmd) - 1}).Debug("Running command")

	start := time.Now()
	err := c.Run()
	res := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return res, errors.Errorf("command %s timed out after %s", cmd[0], r.Timeout)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, &ExitError{
				Cmd:      cmd,
				ExitCode: res.ExitCode,
				Stderr:   stderr.String(),
			}
		}
		return res, errors.Wrapf(err, "could not run %s", cmd[0])
	}

	r.logger().WithFields(log.Fields{
		"cmd":       cmd[0],
		"duration":  res.Duration,
		"stderrLen": stderr.Len(),
	}).Debug("Command completed")

	return res, nil
}

func (r *Runner) logger() log.FieldLogger {
	if r.Logger == nil {
		return log.StandardLogger()
	}
	return r.Logger
}
