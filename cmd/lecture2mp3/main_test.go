// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/lecture2mp3/internal/batch"
	"github.com/pdiddy/lecture2mp3/internal/linkfile"
	"github.com/pdiddy/lecture2mp3/internal/toolchain"
	"github.com/pdiddy/lecture2mp3/pkg/types"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: exitOK},
		{name: "links missing", err: fmt.Errorf("%w: links.txt", linkfile.ErrMissing), want: exitLinksMiss},
		{name: "links empty", err: fmt.Errorf("%w: links.txt", linkfile.ErrEmpty), want: exitLinksEmpty},
		{name: "tool failed", err: fmt.Errorf("%w: yt-dlp exited with status 1", batch.ErrExecution), want: exitToolFailure},
		{name: "install failed", err: fmt.Errorf("%w: pip", toolchain.ErrInstallFailed), want: exitError},
		{name: "anything else", err: errors.New("boom"), want: exitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil prints nothing", err: nil, want: ""},
		{name: "tool failure already in troubleshooting", err: fmt.Errorf("%w: yt-dlp exited with status 1", batch.ErrExecution), want: ""},
		{name: "install failure", err: fmt.Errorf("%w: pip", toolchain.ErrInstallFailed), want: "Error: " + toolchain.ErrInstallFailed.Error() + ": pip\n"},
		{name: "links missing", err: fmt.Errorf("%w: links.txt", linkfile.ErrMissing), want: "Error: " + linkfile.ErrMissing.Error() + ": links.txt\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			printError(&out, tt.err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := loadConfig(v)
	assert.Equal(t, types.DefaultLinksFile, cfg.LinksFile)
	assert.Equal(t, types.DefaultJobSpec(), cfg.Job)
	assert.Equal(t, types.DefaultToolConfig(), cfg.Tool)
}

func TestLoadConfigOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("job.browser", "edge")
	v.Set("job.retries", 5)
	v.Set("job.output_dir", "audio")
	v.Set("tool.install_command", []string{"pipx", "install", "yt-dlp"})
	v.Set("tool.installer", types.InstallerBundled)
	v.Set("tool.install_ffmpeg", true)

	cfg := loadConfig(v)
	assert.Equal(t, "edge", cfg.Job.Browser)
	assert.Equal(t, 5, cfg.Job.Retries)
	assert.Equal(t, "audio", cfg.Job.OutputDir)
	assert.Equal(t, []string{"pipx", "install", "yt-dlp"}, cfg.Tool.InstallCommand)
	assert.Equal(t, types.InstallerBundled, cfg.Tool.Installer)
	assert.True(t, cfg.Tool.InstallFFmpeg)
	assert.NoError(t, cfg.Tool.Validate())
	assert.Equal(t, types.DefaultAudioFormat, cfg.Job.AudioFormat)
}

func TestPrintLinks(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := loadConfig(v)

	var out bytes.Buffer
	printLinks(&out, []string{"https://a/x.mp4", "https://a/y.mp4"}, cfg, true)

	s := out.String()
	assert.Contains(t, s, "   1  https://a/x.mp4")
	assert.Contains(t, s, "   2  https://a/y.mp4")
	assert.Contains(t, s, "2 links")
	assert.Contains(t, s, `yt-dlp "--cookies-from-browser" "chrome"`)
	assert.Contains(t, s, `"-a" "links.txt"`)
}

func TestFormatHistory(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	runs := []types.RunRecord{{
		ID:         "r1",
		StartedAt:  start,
		FinishedAt: start.Add(95 * time.Second),
		LinkCount:  4,
		FileCount:  4,
		OutputDir:  "mp3_output",
		Status:     types.RunSuccess,
	}}

	var out bytes.Buffer
	formatHistory(&out, runs)
	s := out.String()
	assert.Contains(t, s, "success")
	assert.Contains(t, s, "1m35s")
	assert.Contains(t, s, "1 runs")

	out.Reset()
	formatHistory(&out, nil)
	assert.Equal(t, "No runs recorded.\n", out.String())
}
