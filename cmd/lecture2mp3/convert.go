// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lecture2mp3/internal/batch"
	"github.com/pdiddy/lecture2mp3/internal/history"
	"github.com/pdiddy/lecture2mp3/internal/process"
	"github.com/pdiddy/lecture2mp3/internal/toolchain"
	"github.com/pdiddy/lecture2mp3/internal/workflow"
	"github.com/pdiddy/lecture2mp3/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [links-file]",
	Short: "Download every link in the batch file and convert it to MP3",
	Long: `Convert checks that yt-dlp is installed (installing it with pip, or as a
standalone download with --installer bundled, when it is not), reads the
batch file, and runs yt-dlp once over the whole batch with cookies from the
selected browser. Audio files are named after each video's title and
written to the output directory. With --install-ffmpeg a missing ffmpeg is
downloaded as well.

Close the browser before running: its cookie store cannot be read while it
is open.

Exit status: 0 success, 2 batch file missing, 3 batch file empty,
4 yt-dlp failed, 1 any other error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().Bool("no-history", false, "do not record this run in the history database")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())
	if len(args) == 1 {
		cfg.LinksFile = args[0]
	}

	if err := cfg.Tool.Validate(); err != nil {
		return err
	}

	runner := process.OSRunner{}
	guard := &toolchain.Guard{
		Downloader: toolchain.NewDownloader(cfg.Tool, runner),
		FFmpeg:     toolchain.NewFFmpeg(cfg.Tool, runner),
		Out:        os.Stdout,
	}
	wf := &workflow.Workflow{
		Deps: guard,
		Invoker: &batch.Invoker{
			Binary: cfg.Tool.Binary,
			Runner: runner,
			Lister: batch.OSLister{},
			Tools:  guard,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		},
		Out: os.Stdout,
	}

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if !noHistory && cfg.HistoryPath != "" {
		rec := &lazyRecorder{path: cfg.HistoryPath}
		defer rec.Close()
		wf.Recorder = rec
	}

	_, err := wf.Run(cmd.Context(), cfg.LinksFile, cfg.Job)
	return err
}

// lazyRecorder opens the history database on first use, so runs that stop
// before invoking the tool leave no trace on disk.
type lazyRecorder struct {
	path  string
	store *history.Store
}

func (l *lazyRecorder) Record(ctx context.Context, rec types.RunRecord) error {
	if l.store == nil {
		s, err := history.Open(l.path)
		if err != nil {
			return err
		}
		l.store = s
	}
	return l.store.Record(ctx, rec)
}

func (l *lazyRecorder) Close() error {
	if l.store == nil {
		return nil
	}
	return l.store.Close()
}
