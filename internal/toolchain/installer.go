// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolchain

import (
	"context"
	"fmt"
	"io"

	"github.com/lrstanley/go-ytdlp"

	"github.com/pdiddy/lecture2mp3/internal/process"
)

// Installer makes a tool available and returns the executable to run.
type Installer interface {
	Install(ctx context.Context, w io.Writer) (string, error)
}

// CommandInstaller runs an install command such as pip. The installed tool
// is expected on PATH under Binary.
type CommandInstaller struct {
	Command []string
	Binary  string
	Runner  process.Runner
}

// Install runs the command, streaming its output to w.
func (c *CommandInstaller) Install(ctx context.Context, w io.Writer) (string, error) {
	if len(c.Command) == 0 {
		return "", fmt.Errorf("%w: no install command configured for %s", ErrInstallFailed, c.Binary)
	}
	cmd := process.Command{
		Name:   c.Command[0],
		Args:   c.Command[1:],
		Stdout: w,
		Stderr: w,
	}
	res, err := c.Runner.Run(ctx, cmd)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInstallFailed, cmd, err)
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("%w: %s exited with status %d", ErrInstallFailed, cmd, res.ExitCode)
	}
	return c.Binary, nil
}

// fetchFunc downloads one standalone executable and returns its path.
type fetchFunc func(ctx context.Context) (string, error)

// BundledInstaller downloads standalone builds into the user cache with
// go-ytdlp. No Python or package manager is needed.
type BundledInstaller struct {
	name  string
	fetch []fetchFunc
}

// BundledDownloader returns an installer for a standalone yt-dlp build.
func BundledDownloader() *BundledInstaller {
	return &BundledInstaller{name: "yt-dlp", fetch: []fetchFunc{fetchYtdlp}}
}

// BundledFFmpeg returns an installer for standalone ffmpeg and ffprobe
// builds. Both land in the same directory, which yt-dlp needs for audio
// extraction.
func BundledFFmpeg() *BundledInstaller {
	return &BundledInstaller{name: "ffmpeg", fetch: []fetchFunc{fetchFFmpeg, fetchFFprobe}}
}

// Install runs every download in order and returns the first executable.
func (b *BundledInstaller) Install(ctx context.Context, _ io.Writer) (string, error) {
	var first string
	for _, fetch := range b.fetch {
		path, err := fetch(ctx)
		if err != nil {
			return "", fmt.Errorf("%w: bundled %s: %w", ErrInstallFailed, b.name, err)
		}
		if first == "" {
			first = path
		}
	}
	return first, nil
}

func fetchYtdlp(ctx context.Context) (string, error) {
	// A broken yt-dlp on PATH is why we are here; skip it.
	res, err := ytdlp.Install(ctx, &ytdlp.InstallOptions{DisableSystem: true})
	if err != nil {
		return "", err
	}
	return res.Executable, nil
}

func fetchFFmpeg(ctx context.Context) (string, error) {
	res, err := ytdlp.InstallFFmpeg(ctx, nil)
	if err != nil {
		return "", err
	}
	return res.Executable, nil
}

func fetchFFprobe(ctx context.Context) (string, error) {
	res, err := ytdlp.InstallFFprobe(ctx, nil)
	if err != nil {
		return "", err
	}
	return res.Executable, nil
}
