// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs the external downloader once over a whole batch file
// and summarizes what it produced.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdiddy/lecture2mp3/internal/process"
	"github.com/pdiddy/lecture2mp3/pkg/types"
)

// ErrExecution is returned when the downloader exits with a non-zero status.
var ErrExecution = errors.New("download/conversion failed")

// Args builds the downloader argument list for one batch invocation. The
// batch file is passed by path; the tool reads every URL from it.
func Args(linksPath string, spec types.ConversionJobSpec) []string {
	args := []string{
		"--cookies-from-browser", spec.Browser,
		"-x",
		"--audio-format", spec.AudioFormat,
		"--audio-quality", spec.AudioQuality,
		"-o", filepath.Join(spec.OutputDir, spec.OutputTemplate),
	}
	if spec.ExpandPlaylists {
		args = append(args, "--yes-playlist")
	} else {
		args = append(args, "--no-playlist")
	}
	args = append(args,
		"--retries", strconv.Itoa(spec.Retries),
		"-a", linksPath,
	)
	return args
}

// Locator reports executables resolved at run time, after an installer
// may have placed them outside PATH.
type Locator interface {
	// DownloaderPath returns the downloader executable.
	DownloaderPath() string
	// FFmpegLocation returns the ffmpeg directory, or "" to use PATH.
	FFmpegLocation() string
}

// Invoker runs the downloader over a batch file.
type Invoker struct {
	Binary string
	Runner process.Runner
	Lister DirectoryLister

	// Tools, when set, overrides Binary and points the downloader at an
	// installed ffmpeg.
	Tools Locator

	// Stdout and Stderr receive the tool's own output.
	Stdout io.Writer
	Stderr io.Writer
}

// Run creates the output directory, invokes the downloader once and
// blocks until it exits. On success the output directory is listed for
// files with the job's audio extension. A non-zero exit returns
// ErrExecution together with the result; files already written are left
// in place.
func (inv *Invoker) Run(ctx context.Context, linksPath string, spec types.ConversionJobSpec) (types.ExecutionResult, error) {
	if err := os.MkdirAll(spec.OutputDir, 0o755); err != nil {
		return types.ExecutionResult{}, fmt.Errorf("creating output directory %s: %w", spec.OutputDir, err)
	}

	bin := inv.binary()
	args := Args(linksPath, spec)
	if inv.Tools != nil {
		if loc := inv.Tools.FFmpegLocation(); loc != "" {
			args = append([]string{"--ffmpeg-location", loc}, args...)
		}
	}
	cmd := process.Command{
		Name:   bin,
		Args:   args,
		Stdout: inv.Stdout,
		Stderr: inv.Stderr,
	}
	slog.Info("batch.invoke", "command", cmd.String())

	res, err := inv.Runner.Run(ctx, cmd)
	if err != nil {
		return types.ExecutionResult{ExitCode: res.ExitCode}, fmt.Errorf("%w: %w", ErrExecution, err)
	}

	result := types.ExecutionResult{ExitCode: res.ExitCode}
	if !result.Succeeded() {
		slog.Warn("batch.failed", "exit_code", res.ExitCode)
		return result, fmt.Errorf("%w: %s exited with status %d", ErrExecution, bin, res.ExitCode)
	}

	// After a successful run a listing failure is reported as zero files.
	files, err := MatchingFiles(inv.Lister, spec.OutputDir, spec.Extension())
	if err != nil {
		slog.Warn("batch.list_failed", "dir", spec.OutputDir, "error", err)
		return result, nil
	}
	result.Files = files
	slog.Info("batch.done", "files", len(files))
	return result, nil
}

func (inv *Invoker) binary() string {
	if inv.Tools != nil {
		if p := inv.Tools.DownloaderPath(); p != "" {
			return p
		}
	}
	return inv.Binary
}
