// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lecture2mp3/internal/extract"
	"github.com/pdiddy/lecture2mp3/internal/linkfile"
)

var extractCmd = &cobra.Command{
	Use:   "extract [pages...]",
	Short: "Collect direct video links from saved course pages",
	Long: `Extract scans HTML pages saved from the course site (files, or
directories of .html/.htm files) for direct MP4 links. Each page
contributes its first match, trying CloudFront URLs, then <video src>
attributes, then any MP4 URL. Links are de-duplicated and appended to the
batch file; links already in the batch file are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().Bool("dry-run", false, "print the links without writing the batch file")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())

	res, err := extract.Pages(args, os.Stdout)
	if err != nil {
		return err
	}

	existing, err := linkfile.Read(cfg.LinksFile)
	if err != nil && !errors.Is(err, linkfile.ErrMissing) && !errors.Is(err, linkfile.ErrEmpty) {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, l := range existing {
		have[l] = true
	}
	var fresh []string
	for _, l := range res.Links {
		if !have[l] {
			fresh = append(fresh, l)
		}
	}

	fmt.Fprintf(os.Stdout, "\nExtract summary: %d links found, %d new, %d pages without video, %d failed\n",
		len(res.Links), len(fresh), len(res.NoMatch), len(res.Failed))

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		for _, l := range fresh {
			fmt.Fprintln(os.Stdout, l)
		}
		return nil
	}

	if err := linkfile.Append(cfg.LinksFile, fresh); err != nil {
		return err
	}
	if len(fresh) > 0 {
		fmt.Fprintf(os.Stdout, "Appended %d links to %s\n", len(fresh), cfg.LinksFile)
	}
	if len(res.Failed) > 0 {
		return fmt.Errorf("%d page(s) could not be read", len(res.Failed))
	}
	return nil
}
