// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Defaults for the conversion job. They match what lecture transcription
// tools accept without further processing.
const (
	DefaultLinksFile      = "links.txt"
	DefaultOutputDir      = "mp3_output"
	DefaultAudioFormat    = "mp3"
	DefaultAudioQuality   = "192K"
	DefaultBrowser        = "chrome"
	DefaultRetries        = 3
	DefaultOutputTemplate = "%(title)s.%(ext)s"
	DefaultToolBinary     = "yt-dlp"
	DefaultFFmpegBinary   = "ffmpeg"
)

// Installers for the external tool.
const (
	// InstallerPip runs ToolConfig.InstallCommand and expects the tool on PATH.
	InstallerPip = "pip"

	// InstallerBundled downloads a standalone build into the user cache.
	InstallerBundled = "bundled"
)

// DefaultInstallCommand installs the external tool through the Python
// package manager.
var DefaultInstallCommand = []string{"python3", "-m", "pip", "install", "-U", "yt-dlp"}

// ConversionJobSpec holds the settings passed to the external tool for a
// batch run. It is built once at startup and not modified afterwards.
type ConversionJobSpec struct {
	// OutputDir is the directory that receives the audio files.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// AudioFormat is the target codec identifier (e.g. "mp3").
	AudioFormat string `json:"audio_format" yaml:"audio_format"`

	// AudioQuality is the target bitrate (e.g. "192K").
	AudioQuality string `json:"audio_quality" yaml:"audio_quality"`

	// Browser names the installed browser whose cookie store authenticates
	// the downloads (e.g. "chrome", "edge", "firefox").
	Browser string `json:"browser" yaml:"browser"`

	// Retries is the per-item retry count for transient failures.
	Retries int `json:"retries" yaml:"retries"`

	// ExpandPlaylists lets a URL resolve to a collection. Disabled by
	// default so each URL yields exactly one item.
	ExpandPlaylists bool `json:"expand_playlists" yaml:"expand_playlists"`

	// OutputTemplate names each file from the item's metadata.
	OutputTemplate string `json:"output_template" yaml:"output_template"`
}

// Extension returns the file extension produced for AudioFormat,
// including the leading dot.
func (s ConversionJobSpec) Extension() string {
	return "." + s.AudioFormat
}

// DefaultJobSpec returns the compiled-in job settings.
func DefaultJobSpec() ConversionJobSpec {
	return ConversionJobSpec{
		OutputDir:      DefaultOutputDir,
		AudioFormat:    DefaultAudioFormat,
		AudioQuality:   DefaultAudioQuality,
		Browser:        DefaultBrowser,
		Retries:        DefaultRetries,
		OutputTemplate: DefaultOutputTemplate,
	}
}

// ToolConfig locates the external downloader and the commands used to
// check and install it.
type ToolConfig struct {
	// Binary is the downloader executable name or path.
	Binary string `json:"binary" yaml:"binary"`

	// InstallCommand is run once when the downloader is not usable.
	InstallCommand []string `json:"install_command" yaml:"install_command"`

	// Installer selects how a missing downloader is installed:
	// InstallerPip or InstallerBundled.
	Installer string `json:"installer" yaml:"installer"`

	// FFmpegBinary is checked before a run; audio extraction needs it.
	FFmpegBinary string `json:"ffmpeg_binary" yaml:"ffmpeg_binary"`

	// InstallFFmpeg downloads standalone ffmpeg and ffprobe builds when
	// FFmpegBinary is not usable. When false a missing ffmpeg only warns.
	InstallFFmpeg bool `json:"install_ffmpeg" yaml:"install_ffmpeg"`
}

// Validate reports configuration the toolchain cannot act on.
func (c ToolConfig) Validate() error {
	switch c.Installer {
	case InstallerPip, InstallerBundled:
		return nil
	default:
		return fmt.Errorf("unknown installer %q (want %q or %q)", c.Installer, InstallerPip, InstallerBundled)
	}
}

// DefaultToolConfig returns the yt-dlp based tool configuration.
func DefaultToolConfig() ToolConfig {
	install := make([]string, len(DefaultInstallCommand))
	copy(install, DefaultInstallCommand)
	return ToolConfig{
		Binary:         DefaultToolBinary,
		InstallCommand: install,
		Installer:      InstallerPip,
		FFmpegBinary:   DefaultFFmpegBinary,
	}
}

// AppConfig groups everything loaded at startup.
type AppConfig struct {
	LinksFile string            `json:"links_file" yaml:"links_file"`
	Job       ConversionJobSpec `json:"job" yaml:"job"`
	Tool      ToolConfig        `json:"tool" yaml:"tool"`

	// HistoryPath is the SQLite run history database. Empty disables history.
	HistoryPath string `json:"history_path" yaml:"history_path"`

	// LogDir holds the rotated diagnostic log.
	LogDir string `json:"log_dir" yaml:"log_dir"`
}
