// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lecture2mp3 CLI. It turns a
// batch file of lecture video links into MP3 files by driving yt-dlp with
// cookies from an installed browser.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lecture2mp3/internal/batch"
	"github.com/pdiddy/lecture2mp3/internal/linkfile"
	"github.com/pdiddy/lecture2mp3/internal/logging"
	"github.com/pdiddy/lecture2mp3/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Process exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitLinksMiss   = 2
	exitLinksEmpty  = 3
	exitToolFailure = 4
)

// closeLog flushes the diagnostic log; set by PersistentPreRunE.
var closeLog = func() error { return nil }

// rootCmd is the base command for the lecture2mp3 CLI.
var rootCmd = &cobra.Command{
	Use:   "lecture2mp3",
	Short: "Batch-convert authenticated lecture videos to MP3",
	Long: `lecture2mp3 reads video links from a batch file (links.txt), downloads
them with yt-dlp using cookies from an installed browser, and extracts the
audio as MP3 files into an output directory (mp3_output/).

Run "lecture2mp3 convert" to process the batch. Use "extract" to collect
direct video links from saved course pages first.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := logging.Setup(logging.Config{
			Dir:   viper.GetString("log_dir"),
			Debug: viper.GetBool("debug"),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: diagnostic log disabled: %v\n", err)
			return nil
		}
		closeLog = cleanup
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./lecture2mp3.yaml or ~/.config/lecture2mp3/config.yaml)")
	pf.Bool("debug", false, "write debug records to the diagnostic log")
	pf.String("links", types.DefaultLinksFile, "batch file with one video URL per line")
	pf.String("output-dir", types.DefaultOutputDir, "directory for the audio files")
	pf.String("browser", types.DefaultBrowser, "browser to read authentication cookies from (chrome, edge, firefox, ...)")
	pf.String("audio-format", types.DefaultAudioFormat, "target audio codec")
	pf.String("audio-quality", types.DefaultAudioQuality, "target audio bitrate")
	pf.Int("retries", types.DefaultRetries, "retries per item for transient failures")
	pf.Bool("expand-playlists", false, "let a URL resolve to a whole playlist")
	pf.String("installer", types.InstallerPip, "how to install a missing yt-dlp: pip or bundled (standalone download)")
	pf.Bool("install-ffmpeg", false, "download standalone ffmpeg and ffprobe when ffmpeg is missing")

	bindings := map[string]string{
		"debug":                "debug",
		"links_file":           "links",
		"job.output_dir":       "output-dir",
		"job.browser":          "browser",
		"job.audio_format":     "audio-format",
		"job.audio_quality":    "audio-quality",
		"job.retries":          "retries",
		"job.expand_playlists": "expand-playlists",
		"tool.installer":       "installer",
		"tool.install_ffmpeg":  "install-ffmpeg",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lecture2mp3")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lecture2mp3"))
		}
	}

	viper.SetEnvPrefix("LECTURE2MP3")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers the compiled-in configuration on v.
func setDefaults(v *viper.Viper) {
	job := types.DefaultJobSpec()
	tool := types.DefaultToolConfig()

	v.SetDefault("links_file", types.DefaultLinksFile)
	v.SetDefault("job.output_dir", job.OutputDir)
	v.SetDefault("job.audio_format", job.AudioFormat)
	v.SetDefault("job.audio_quality", job.AudioQuality)
	v.SetDefault("job.browser", job.Browser)
	v.SetDefault("job.retries", job.Retries)
	v.SetDefault("job.expand_playlists", job.ExpandPlaylists)
	v.SetDefault("job.output_template", job.OutputTemplate)
	v.SetDefault("tool.binary", tool.Binary)
	v.SetDefault("tool.install_command", tool.InstallCommand)
	v.SetDefault("tool.installer", tool.Installer)
	v.SetDefault("tool.ffmpeg_binary", tool.FFmpegBinary)
	v.SetDefault("tool.install_ffmpeg", tool.InstallFFmpeg)
	v.SetDefault("history_path", defaultHistoryPath())
	v.SetDefault("log_dir", defaultLogDir())
}

// loadConfig builds the application configuration from v. It is called
// once per command; the result is not modified afterwards.
func loadConfig(v *viper.Viper) types.AppConfig {
	return types.AppConfig{
		LinksFile: v.GetString("links_file"),
		Job: types.ConversionJobSpec{
			OutputDir:       v.GetString("job.output_dir"),
			AudioFormat:     v.GetString("job.audio_format"),
			AudioQuality:    v.GetString("job.audio_quality"),
			Browser:         v.GetString("job.browser"),
			Retries:         v.GetInt("job.retries"),
			ExpandPlaylists: v.GetBool("job.expand_playlists"),
			OutputTemplate:  v.GetString("job.output_template"),
		},
		Tool: types.ToolConfig{
			Binary:         v.GetString("tool.binary"),
			InstallCommand: v.GetStringSlice("tool.install_command"),
			Installer:      v.GetString("tool.installer"),
			FFmpegBinary:   v.GetString("tool.ffmpeg_binary"),
			InstallFFmpeg:  v.GetBool("tool.install_ffmpeg"),
		},
		HistoryPath: v.GetString("history_path"),
		LogDir:      v.GetString("log_dir"),
	}
}

func defaultHistoryPath() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "lecture2mp3", "history.db")
}

func defaultLogDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "lecture2mp3", "logs")
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, linkfile.ErrMissing):
		return exitLinksMiss
	case errors.Is(err, linkfile.ErrEmpty):
		return exitLinksEmpty
	case errors.Is(err, batch.ErrExecution):
		return exitToolFailure
	default:
		return exitError
	}
}

// printError writes err to w unless the workflow already showed it. Tool
// failures are reported with the troubleshooting hints.
func printError(w io.Writer, err error) {
	if err == nil || errors.Is(err, batch.ErrExecution) {
		return
	}
	fmt.Fprintln(w, "Error:", err)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()
	closeLog()

	printError(os.Stderr, err)
	os.Exit(exitCode(err))
}
