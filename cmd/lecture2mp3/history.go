// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lecture2mp3/internal/history"
	"github.com/pdiddy/lecture2mp3/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past convert runs",
	Long: `History lists recent convert runs that reached yt-dlp, newest first,
from the run history database (default ~/.local/share/lecture2mp3/history.db).`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")
	historyCmd.Flags().Bool("yaml", false, "output runs as YAML")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())
	if cfg.HistoryPath == "" {
		return fmt.Errorf("history is disabled: history_path is empty")
	}
	if _, err := os.Stat(cfg.HistoryPath); os.IsNotExist(err) {
		fmt.Println("No runs recorded.")
		return nil
	}

	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	yamlOutput, _ := cmd.Flags().GetBool("yaml")
	switch {
	case jsonOutput:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	case yamlOutput:
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(runs)
	}
	formatHistory(os.Stdout, runs)
	return nil
}

func formatHistory(w io.Writer, runs []types.RunRecord) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-20s  %-8s  %5s  %5s  %4s  %-10s  %s\n",
		"Started", "Status", "Links", "Files", "Exit", "Duration", "Output")
	for _, r := range runs {
		fmt.Fprintf(w, "%-20s  %-8s  %5d  %5d  %4d  %-10s  %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Status, r.LinkCount, r.FileCount, r.ExitCode,
			r.Duration().Round(time.Second), r.OutputDir)
	}
	fmt.Fprintf(w, "\n%d runs\n", len(runs))
}
