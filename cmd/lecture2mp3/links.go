// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lecture2mp3/internal/batch"
	"github.com/pdiddy/lecture2mp3/internal/linkfile"
	"github.com/pdiddy/lecture2mp3/pkg/types"
)

var linksCmd = &cobra.Command{
	Use:   "links [links-file]",
	Short: "List the links convert would process, without downloading",
	Long: `Links parses the batch file with the same rules as convert (blank lines
and lines starting with # are ignored) and prints the resulting entries in
order. With --command it also prints the yt-dlp command line convert would
run. Nothing is downloaded and no directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLinks,
}

func init() {
	linksCmd.Flags().Bool("command", false, "also print the yt-dlp command line")

	rootCmd.AddCommand(linksCmd)
}

func runLinks(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())
	if len(args) == 1 {
		cfg.LinksFile = args[0]
	}

	links, err := linkfile.Read(cfg.LinksFile)
	if err != nil {
		return err
	}

	showCommand, _ := cmd.Flags().GetBool("command")
	printLinks(os.Stdout, links, cfg, showCommand)
	return nil
}

func printLinks(w io.Writer, links []string, cfg types.AppConfig, showCommand bool) {
	for i, l := range links {
		fmt.Fprintf(w, "%4d  %s\n", i+1, l)
	}
	fmt.Fprintf(w, "\n%d links\n", len(links))

	if showCommand {
		fmt.Fprintln(w)
		fmt.Fprint(w, cfg.Tool.Binary)
		for _, a := range batch.Args(cfg.LinksFile, cfg.Job) {
			fmt.Fprintf(w, " %q", a)
		}
		fmt.Fprintln(w)
	}
}
