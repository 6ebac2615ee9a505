package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of lecture2mp3",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lecture2mp3 %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
