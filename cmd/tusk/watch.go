package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/tusk"
	"github.com/aretw0/tusk/pkg/adapters/lifecycle"
	"github.com/aretw0/tusk/pkg/core"
)

var watchFor time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Report external changes to a document and the snippet file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if watchFor > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, watchFor)
			defer cancel()
		}

		env, err := tusk.Resolve(options()...)
		if err != nil {
			fatal("Failed to resolve configuration", err)
		}
		table, err := tusk.OpenSnippets(ctx, options()...)
		if err != nil {
			fatal("Failed to load snippets", err)
		}
		snippetsPath, _ := filepath.Abs(env.Paths.Snippets)

		events, err := tusk.Watch(ctx, args[0], options()...)
		if err != nil {
			fatal("Failed to start watcher", err)
		}

		source := lifecycle.NewSource(events)
		if err := source.Start(ctx); err != nil {
			fatal("Failed to start event source", err)
		}
		fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", args[0])

		for e := range source.Events() {
			fmt.Println(e.String())
			if ev, ok := e.(core.Event); ok && ev.Path == snippetsPath {
				table.Reload(ctx)
				fmt.Printf("snippets reloaded: %d custom\n", len(table.Custom()))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchFor, "for", 0, "Stop after this long (0 = until interrupted)")
}
