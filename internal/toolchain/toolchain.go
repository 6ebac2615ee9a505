// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolchain verifies that the external downloader is usable and
// installs it when it is not.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/pdiddy/lecture2mp3/internal/process"
	"github.com/pdiddy/lecture2mp3/pkg/types"
)

// ErrInstallFailed is returned when an installer cannot make the tool
// available.
var ErrInstallFailed = errors.New("dependency installation failed")

// DependencyProvider makes the external tool available before a run.
type DependencyProvider interface {
	// Ensure returns nil when the tool is usable, installing it first if
	// needed. A non-nil error means the environment cannot run the batch.
	Ensure(ctx context.Context) error
}

// Tool is an external binary that can be checked and, optionally, installed.
type Tool struct {
	bin         string
	versionArgs []string
	installer   Installer // nil means the tool cannot be installed
	runner      process.Runner

	// path is the executable reported by the last successful Install.
	path string
}

// NewDownloader returns the batch downloader described by cfg. It is
// installed with the configured command unless cfg selects the bundled
// installer.
func NewDownloader(cfg types.ToolConfig, runner process.Runner) *Tool {
	t := &Tool{
		bin:         cfg.Binary,
		versionArgs: []string{"--version"},
		runner:      runner,
	}
	if cfg.Installer == types.InstallerBundled {
		t.installer = BundledDownloader()
	} else {
		t.installer = &CommandInstaller{Command: cfg.InstallCommand, Binary: cfg.Binary, Runner: runner}
	}
	return t
}

// NewFFmpeg returns the transcoding engine the downloader relies on. It is
// only installed when cfg.InstallFFmpeg is set.
func NewFFmpeg(cfg types.ToolConfig, runner process.Runner) *Tool {
	t := &Tool{
		bin:         cfg.FFmpegBinary,
		versionArgs: []string{"-version"},
		runner:      runner,
	}
	if cfg.InstallFFmpeg {
		t.installer = BundledFFmpeg()
	}
	return t
}

// Name returns the binary name.
func (t *Tool) Name() string { return t.bin }

// Path returns the executable to run: the installed one after Install,
// otherwise the configured binary.
func (t *Tool) Path() string {
	if t.path != "" {
		return t.path
	}
	return t.bin
}

// Installable reports whether an installer is configured.
func (t *Tool) Installable() bool { return t.installer != nil }

// Available reports whether the binary starts and answers its version
// command with exit status zero.
func (t *Tool) Available(ctx context.Context) bool {
	res, err := t.runner.Run(ctx, process.Command{Name: t.bin, Args: t.versionArgs})
	if err != nil {
		slog.Debug("toolchain.version_check", "tool", t.bin, "error", err)
		return false
	}
	slog.Debug("toolchain.version_check", "tool", t.bin, "exit_code", res.ExitCode)
	return res.ExitCode == 0
}

// Install runs the tool's installer, streaming its output to w.
func (t *Tool) Install(ctx context.Context, w io.Writer) error {
	if t.installer == nil {
		return fmt.Errorf("%w: no installer configured for %s", ErrInstallFailed, t.bin)
	}
	path, err := t.installer.Install(ctx, w)
	if err != nil {
		return err
	}
	t.path = path
	slog.Info("toolchain.installed", "tool", t.bin, "path", path)
	return nil
}

// Guard is the DependencyProvider used by the convert command. It checks
// the downloader and installs it once if the check fails. A missing ffmpeg
// is installed when the tool allows it and only warned about otherwise.
type Guard struct {
	Downloader *Tool
	FFmpeg     *Tool // optional
	Out        io.Writer
}

// Ensure implements DependencyProvider. An installation failure is not
// retried.
func (g *Guard) Ensure(ctx context.Context) error {
	if !g.Downloader.Available(ctx) {
		fmt.Fprintf(g.Out, "Installing %s...\n", g.Downloader.Name())
		slog.Info("toolchain.install", "tool", g.Downloader.Name())
		if err := g.Downloader.Install(ctx, g.Out); err != nil {
			return err
		}
	}

	if g.FFmpeg == nil || g.FFmpeg.Available(ctx) {
		return nil
	}
	if !g.FFmpeg.Installable() {
		fmt.Fprintf(g.Out, "warning: %s not found; audio extraction will fail without it\n", g.FFmpeg.Name())
		slog.Warn("toolchain.ffmpeg_missing", "tool", g.FFmpeg.Name())
		return nil
	}
	fmt.Fprintf(g.Out, "Installing %s...\n", g.FFmpeg.Name())
	slog.Info("toolchain.install", "tool", g.FFmpeg.Name())
	return g.FFmpeg.Install(ctx, g.Out)
}

// DownloaderPath returns the downloader executable to run after Ensure.
func (g *Guard) DownloaderPath() string { return g.Downloader.Path() }

// FFmpegLocation returns the directory of an ffmpeg installed by Ensure, or
// "" when the one on PATH is used.
func (g *Guard) FFmpegLocation() string {
	if g.FFmpeg == nil || g.FFmpeg.path == "" {
		return ""
	}
	return filepath.Dir(g.FFmpeg.path)
}
