package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/tusk"
)

var (
	verbose bool
	home    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tusk",
	Short: "A markdown editing core with autosave, drafts and snippets",
	Long: `Tusk is the headless core of a terminal markdown editor.
It replays keystrokes through the markdown-aware editing engine, autosaves
every change atomically and keeps per-document settings between sessions.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options returns the tusk options shared by every subcommand.
func options() []tusk.Option {
	opts := []tusk.Option{tusk.WithLogger(slog.Default())}
	if home != "" {
		opts = append(opts, tusk.WithHome(home))
	}
	return opts
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&home, "home", "", "State directory (default $TUSK_HOME or ~/.tusk)")
}
