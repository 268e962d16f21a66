// Package exec abstracts child-process execution behind a small interface so
// that code shelling out to external tools (the GA4 admin script, the az CLI)
// can be exercised in tests without spawning real processes.
package exec

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// CommandExecutor runs one external command per call.
type CommandExecutor interface {
	// Execute spawns name with args, waits for it to exit, and returns the
	// captured output streams. Stdout and stderr are captured independently
	// and never mixed. A non-zero exit status is reported through err.
	Execute(ctx context.Context, name string, args ...string) (stdout []byte, stderr []byte, err error)
}

// RealCommandExecutor is the production CommandExecutor. Each Execute call
// spawns exactly one child process and blocks until it exits; canceling the
// context kills the child.
type RealCommandExecutor struct{}

// Execute runs the command via os/exec with separate stdout/stderr buffers.
func (r *RealCommandExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// DefaultExecutor returns the production executor. Callers that accept an
// injected CommandExecutor fall back to this when given nil.
func DefaultExecutor() CommandExecutor {
	return &RealCommandExecutor{}
}

// exitCoder is satisfied by *exec.ExitError and by test doubles that
// simulate child exits.
type exitCoder interface {
	ExitCode() int
}

// ExitCode extracts the child's exit status from an Execute error. The
// second return is false when the error does not carry one (the process
// never started, or the context was canceled before exit).
func ExitCode(err error) (int, bool) {
	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode(), true
	}
	return 0, false
}
