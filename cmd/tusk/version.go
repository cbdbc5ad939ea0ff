package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/tusk"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tusk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tusk version %s\n", strings.TrimSpace(tusk.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
