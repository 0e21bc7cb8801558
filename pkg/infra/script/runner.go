// Package script runs the external sync script.
package script

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/dirhook/pkg/domain/model"
)

const waitDelay = 2 * time.Second

// Runner executes one executable with no arguments and captures its output
type Runner struct {
	path    string
	timeout time.Duration
	dir     string
}

// Option configures a Runner
type Option func(*Runner)

// WithTimeout kills the script after d. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithWorkingDir sets the directory the script runs in
func WithWorkingDir(dir string) Option {
	return func(r *Runner) {
		r.dir = dir
	}
}

// NewRunner creates a Runner for the executable at path
func NewRunner(path string, opts ...Option) *Runner {
	r := &Runner{path: path}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the executable path
func (r *Runner) Path() string {
	return r.path
}

// Run executes the script. A non-zero exit returns both the captured result
// and an error; a spawn failure returns only an error.
func (r *Runner) Run(ctx context.Context) (*model.SyncResult, error) {
	if r.path == "" {
		return nil, goerr.New("sync script is not configured")
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.path)
	cmd.Dir = r.dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// children holding the output pipes must not keep Wait blocked after a kill
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	result := &model.SyncResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return result, goerr.Wrap(err, "sync script exited with error",
				goerr.V("path", r.path),
				goerr.V("exit_code", result.ExitCode),
			)
		}
		return nil, goerr.Wrap(err, "failed to run sync script", goerr.V("path", r.path))
	}

	return result, nil
}
