// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package process runs external programs behind an interface so that the
// stages driving them can be tested without spawning processes.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// Command describes one external program invocation.
type Command struct {
	Name   string
	Args   []string
	Stdout io.Writer // nil discards output
	Stderr io.Writer // nil discards output
}

// String renders the command line for logs and error messages.
func (c Command) String() string {
	s := c.Name
	for _, a := range c.Args {
		s += " " + a
	}
	return s
}

// Result is the outcome of a command that started and exited.
type Result struct {
	ExitCode int
}

// Runner executes commands. Run blocks until the process exits.
//
// A non-zero exit status is reported through Result.ExitCode with a nil
// error. The error is reserved for commands that could not be started
// (binary missing, not executable) or were interrupted by ctx.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// OSRunner is the production Runner backed by os/exec.
type OSRunner struct{}

// Run starts cmd and waits for it to exit.
func (OSRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Stdout = cmd.Stdout
	c.Stderr = cmd.Stderr

	err := c.Run()
	if err == nil {
		return Result{ExitCode: 0}, nil
	}
	if ctx.Err() != nil {
		return Result{ExitCode: -1}, fmt.Errorf("running %s: %w", cmd.Name, ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{ExitCode: exitErr.ExitCode()}, nil
	}
	return Result{ExitCode: -1}, fmt.Errorf("starting %s: %w", cmd.Name, err)
}
