// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines data structures shared by the lecture2mp3 stages:
// the job settings, the outcome of a batch invocation and the run history
// record.
package types

import "time"

// ExecutionResult is the outcome of one invocation of the external tool.
type ExecutionResult struct {
	// ExitCode is the tool's process exit status.
	ExitCode int `json:"exit_code" yaml:"exit_code"`

	// Files lists output file names with the expected audio extension,
	// found by listing the output directory after a successful run.
	// It is best-effort and may undercount.
	Files []string `json:"files,omitempty" yaml:"files,omitempty"`
}

// Succeeded reports whether the tool exited with status zero.
func (r ExecutionResult) Succeeded() bool {
	return r.ExitCode == 0
}

// RunStatus is the terminal state of a recorded run.
type RunStatus string

const (
	RunSuccess RunStatus = "success"
	RunFailed  RunStatus = "failed"
)

// RunRecord is one entry of the run history.
type RunRecord struct {
	ID         string    `json:"id" yaml:"id"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	LinksFile  string    `json:"links_file" yaml:"links_file"`
	LinkCount  int       `json:"link_count" yaml:"link_count"`
	OutputDir  string    `json:"output_dir" yaml:"output_dir"`
	Status     RunStatus `json:"status" yaml:"status"`
	ExitCode   int       `json:"exit_code" yaml:"exit_code"`
	FileCount  int       `json:"file_count" yaml:"file_count"`
}

// Duration returns how long the run took.
func (r RunRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
