// Package capture orchestrates the external tooling that produces raw
// vibration records: serial-port discovery, the gyro-actuator control
// executable, a timed sensor-capture executable, and the per-session
// CSV log. It never speaks a hardware protocol itself; its only
// contract with the spectral core is a readable sample file at a
// known, constant sampling rate.
package capture

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner executes an external command and returns its standard output.
// Components take a Runner instead of calling the exec package
// directly so tests can substitute a fake and applications can add
// policy (retries, sandboxing) in one place.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec, honoring context
// cancellation and deadlines.
type ExecRunner struct{}

// Run executes the command and returns its stdout.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return stdout.String(), err
	}

	return stdout.String(), nil
}
