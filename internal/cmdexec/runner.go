// Package cmdexec provides an abstraction for executing installer processes.
// This enables testability by allowing mock implementations.
package cmdexec

import (
	"autoinstall/internal/logstream"
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Runner executes external commands.
type Runner interface {
	// Run executes a command and returns its combined output.
	// Returns error if the command cannot start or exits non-zero.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// RealRunner executes commands on the actual system without a console window.
type RealRunner struct{}

// Run executes the command and returns combined stdout/stderr. Output is
// also streamed line by line to the context's logstream writer, if any.
func (r *RealRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	hideWindow(cmd)

	var out bytes.Buffer
	w := logstream.MultiWriter(logstream.Writer(ctx), &out)
	cmd.Stdout = w
	cmd.Stderr = w
	err := cmd.Run()
	return out.Bytes(), err
}

// DefaultRunner returns a runner that executes real system commands.
func DefaultRunner() Runner {
	return &RealRunner{}
}

// ExitCode extracts the process exit code from a Run error.
// ok is false when the process never started or was not waited on.
func ExitCode(err error) (code int, ok bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}
