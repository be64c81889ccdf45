// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package conan

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Output is what a finished conan invocation produced.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the process exited with status zero.
func (o Output) Success() bool {
	return o.ExitCode == 0
}

// String joins stderr and stdout for diagnostics, stderr first.
func (o Output) String() string {
	var parts []string
	if s := strings.TrimSpace(string(o.Stderr)); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(string(o.Stdout)); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n")
}

// Runner runs an external program to completion. The returned error is
// reserved for failures to run the program at all; a program that ran and
// exited non-zero is reported through Output.ExitCode.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	c := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, err
}
