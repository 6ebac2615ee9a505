// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lecture2mp3/internal/process"
	"github.com/pdiddy/lecture2mp3/pkg/types"
)

// fakeRunner returns a canned result and records every command.
type fakeRunner struct {
	exitCode int
	err      error
	cmds     []process.Command
}

func (f *fakeRunner) Run(_ context.Context, cmd process.Command) (process.Result, error) {
	f.cmds = append(f.cmds, cmd)
	return process.Result{ExitCode: f.exitCode}, f.err
}

// fakeLister returns fixed names and counts calls.
type fakeLister struct {
	names []string
	err   error
	calls int
}

func (f *fakeLister) List(string) ([]string, error) {
	f.calls++
	return f.names, f.err
}

func testSpec(t *testing.T) types.ConversionJobSpec {
	t.Helper()
	spec := types.DefaultJobSpec()
	spec.OutputDir = filepath.Join(t.TempDir(), "mp3_output")
	return spec
}

func TestArgs(t *testing.T) {
	spec := types.DefaultJobSpec()
	got := Args("links.txt", spec)
	want := []string{
		"--cookies-from-browser", "chrome",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "192K",
		"-o", filepath.Join("mp3_output", "%(title)s.%(ext)s"),
		"--no-playlist",
		"--retries", "3",
		"-a", "links.txt",
	}
	assert.Equal(t, want, got)
}

func TestArgsPlaylistExpansion(t *testing.T) {
	spec := types.DefaultJobSpec()
	spec.ExpandPlaylists = true
	got := Args("links.txt", spec)
	assert.Contains(t, got, "--yes-playlist")
	assert.NotContains(t, got, "--no-playlist")
}

func TestInvokerRun(t *testing.T) {
	tests := []struct {
		name       string
		runner     *fakeRunner
		lister     *fakeLister
		wantErr    error
		wantFiles  []string
		wantListed int
	}{
		{
			name:       "success lists matching files",
			runner:     &fakeRunner{},
			lister:     &fakeLister{names: []string{"c.mp3", "a.mp3", "notes.txt", "b.mp3"}},
			wantFiles:  []string{"a.mp3", "b.mp3", "c.mp3"},
			wantListed: 1,
		},
		{
			name:       "listing failure after success reports no files",
			runner:     &fakeRunner{},
			lister:     &fakeLister{err: errors.New("permission denied")},
			wantFiles:  nil,
			wantListed: 1,
		},
		{
			name:       "non-zero exit skips listing",
			runner:     &fakeRunner{exitCode: 1},
			lister:     &fakeLister{names: []string{"a.mp3"}},
			wantErr:    ErrExecution,
			wantListed: 0,
		},
		{
			name:       "start failure is an execution error",
			runner:     &fakeRunner{exitCode: -1, err: errors.New("executable file not found")},
			lister:     &fakeLister{},
			wantErr:    ErrExecution,
			wantListed: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := testSpec(t)
			inv := &Invoker{Binary: "yt-dlp", Runner: tt.runner, Lister: tt.lister}

			res, err := inv.Run(context.Background(), "links.txt", spec)

			require.Len(t, tt.runner.cmds, 1, "exactly one invocation per batch")
			assert.Equal(t, "yt-dlp", tt.runner.cmds[0].Name)
			assert.Equal(t, tt.wantListed, tt.lister.calls)

			info, statErr := os.Stat(spec.OutputDir)
			require.NoError(t, statErr, "output directory should exist")
			assert.True(t, info.IsDir())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.False(t, res.Succeeded())
				assert.Empty(t, res.Files)
				return
			}
			require.NoError(t, err)
			assert.True(t, res.Succeeded())
			assert.Equal(t, tt.wantFiles, res.Files)
		})
	}
}

type fakeLocator struct {
	downloader string
	ffmpeg     string
}

func (f fakeLocator) DownloaderPath() string { return f.downloader }
func (f fakeLocator) FFmpegLocation() string { return f.ffmpeg }

func TestInvokerRunUsesLocatedTools(t *testing.T) {
	tests := []struct {
		name     string
		tools    Locator
		wantBin  string
		wantHead []string
	}{
		{
			name:     "no locator",
			wantBin:  "yt-dlp",
			wantHead: []string{"--cookies-from-browser"},
		},
		{
			name:     "installed downloader, ffmpeg on PATH",
			tools:    fakeLocator{downloader: "/cache/yt-dlp"},
			wantBin:  "/cache/yt-dlp",
			wantHead: []string{"--cookies-from-browser"},
		},
		{
			name:     "installed ffmpeg",
			tools:    fakeLocator{downloader: "yt-dlp", ffmpeg: "/cache/ffmpeg"},
			wantBin:  "yt-dlp",
			wantHead: []string{"--ffmpeg-location", "/cache/ffmpeg", "--cookies-from-browser"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{}
			inv := &Invoker{Binary: "yt-dlp", Runner: r, Lister: &fakeLister{}, Tools: tt.tools}

			_, err := inv.Run(context.Background(), "links.txt", testSpec(t))
			require.NoError(t, err)

			require.Len(t, r.cmds, 1)
			assert.Equal(t, tt.wantBin, r.cmds[0].Name)
			assert.Equal(t, tt.wantHead, r.cmds[0].Args[:len(tt.wantHead)])
			assert.Equal(t, []string{"-a", "links.txt"}, r.cmds[0].Args[len(r.cmds[0].Args)-2:])
		})
	}
}

func TestInvokerRunExistingOutputDir(t *testing.T) {
	spec := testSpec(t)
	require.NoError(t, os.MkdirAll(spec.OutputDir, 0o755))

	inv := &Invoker{Binary: "yt-dlp", Runner: &fakeRunner{}, Lister: &fakeLister{}}
	_, err := inv.Run(context.Background(), "links.txt", spec)
	require.NoError(t, err)
}

func TestOSLister(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp3", "a.mp3", "a.webm.part"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.mp3"), 0o755))

	got, err := MatchingFiles(OSLister{}, dir, ".mp3")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.mp3", "b.mp3"}, got)
}

func TestOSListerMissingDir(t *testing.T) {
	_, err := OSLister{}.List(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
