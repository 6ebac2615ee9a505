// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workflow composes the dependency guard, the link reader and the
// batch invoker into one run:
//
//	START → CHECKING_DEPENDENCY → [INSTALLING →] READING_LINKS →
//	  FAIL_MISSING | FAIL_EMPTY | INVOKING → SUCCESS | FAIL_EXEC
//
// Every terminal state ends the run. Nothing is retried.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/lecture2mp3/internal/batch"
	"github.com/pdiddy/lecture2mp3/internal/linkfile"
	"github.com/pdiddy/lecture2mp3/internal/toolchain"
	"github.com/pdiddy/lecture2mp3/pkg/types"
)

// State is a step of the run.
type State string

const (
	StateStart              State = "START"
	StateCheckingDependency State = "CHECKING_DEPENDENCY"
	StateReadingLinks       State = "READING_LINKS"
	StateFailMissing        State = "FAIL_MISSING"
	StateFailEmpty          State = "FAIL_EMPTY"
	StateInvoking           State = "INVOKING"
	StateSuccess            State = "SUCCESS"
	StateFailExec           State = "FAIL_EXEC"
)

// Invoker runs the external tool over a batch file.
type Invoker interface {
	Run(ctx context.Context, linksPath string, spec types.ConversionJobSpec) (types.ExecutionResult, error)
}

// Recorder persists the outcome of runs that reached the tool.
type Recorder interface {
	Record(ctx context.Context, rec types.RunRecord) error
}

// Workflow runs one batch conversion.
type Workflow struct {
	Deps     toolchain.DependencyProvider
	Invoker  Invoker
	Recorder Recorder // optional
	Out      io.Writer

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string

	state State
}

// State returns the last state the run reached.
func (w *Workflow) State() State { return w.state }

func (w *Workflow) enter(s State) {
	slog.Debug("workflow.state", "from", string(w.state), "to", string(s))
	w.state = s
}

// Run converts every link in the batch file at linksPath according to spec.
//
// The returned error wraps toolchain.ErrInstallFailed, linkfile.ErrMissing,
// linkfile.ErrEmpty or batch.ErrExecution depending on where the run
// stopped. A missing or empty batch file ends the run before any directory
// is created or any process is started.
func (w *Workflow) Run(ctx context.Context, linksPath string, spec types.ConversionJobSpec) (types.ExecutionResult, error) {
	now := w.Now
	if now == nil {
		now = time.Now
	}
	newID := w.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	w.state = StateStart
	w.enter(StateCheckingDependency)
	if err := w.Deps.Ensure(ctx); err != nil {
		return types.ExecutionResult{}, err
	}

	w.enter(StateReadingLinks)
	links, err := linkfile.Read(linksPath)
	switch {
	case errors.Is(err, linkfile.ErrMissing):
		w.enter(StateFailMissing)
		fmt.Fprintf(w.Out, "Create %s and paste the extracted video links into it, one per line.\n", linksPath)
		return types.ExecutionResult{}, err
	case errors.Is(err, linkfile.ErrEmpty):
		w.enter(StateFailEmpty)
		fmt.Fprintf(w.Out, "Add at least one video link to %s.\n", linksPath)
		return types.ExecutionResult{}, err
	case err != nil:
		return types.ExecutionResult{}, err
	}

	fmt.Fprintf(w.Out, "Found %d video links\n", len(links))
	fmt.Fprintln(w.Out, "Starting download with browser cookies...")
	fmt.Fprintln(w.Out, strings.Repeat("-", 50))

	w.enter(StateInvoking)
	rec := types.RunRecord{
		ID:        newID(),
		StartedAt: now(),
		LinksFile: linksPath,
		LinkCount: len(links),
		OutputDir: spec.OutputDir,
	}
	slog.Info("workflow.invoke", "run_id", rec.ID, "links", len(links))

	result, runErr := w.Invoker.Run(ctx, linksPath, spec)

	rec.FinishedAt = now()
	rec.ExitCode = result.ExitCode
	rec.FileCount = len(result.Files)
	if runErr != nil {
		w.enter(StateFailExec)
		rec.Status = types.RunFailed
		batch.Troubleshoot(w.Out, spec, runErr)
	} else {
		w.enter(StateSuccess)
		rec.Status = types.RunSuccess
		batch.Report(w.Out, result, spec)
	}
	w.record(ctx, rec)

	return result, runErr
}

func (w *Workflow) record(ctx context.Context, rec types.RunRecord) {
	if w.Recorder == nil {
		return
	}
	if err := w.Recorder.Record(ctx, rec); err != nil {
		slog.Warn("workflow.record_failed", "run_id", rec.ID, "error", err)
	}
}
