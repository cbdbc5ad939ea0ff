package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/tusk"
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "List draft documents, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		drafts, err := tusk.ListDrafts(options()...)
		if err != nil {
			fatal("Failed to list drafts", err)
		}
		for _, path := range drafts {
			fmt.Println(path)
		}
	},
}

func init() {
	rootCmd.AddCommand(draftsCmd)
}
