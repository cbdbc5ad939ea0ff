package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aretw0/tusk"
)

var (
	snippetsJSON   bool
	snippetsCustom bool
	snippetDesc    string
)

var snippetsCmd = &cobra.Command{
	Use:   "snippets",
	Short: "Manage snippet triggers",
}

var snippetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List builtin and custom snippets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		table, err := tusk.OpenSnippets(context.Background(), options()...)
		if err != nil {
			fatal("Failed to load snippets", err)
		}

		list := table.List()
		if snippetsCustom {
			list = table.Custom()
		}

		if snippetsJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(list); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, s := range list {
			fmt.Fprintf(w, "%s\t%s\t%q\t%s\n", s.Trigger, s.Origin, s.Expansion, s.Description)
		}
		w.Flush()
	},
}

var snippetsAddCmd = &cobra.Command{
	Use:   "add TRIGGER EXPANSION",
	Short: "Add or replace a custom snippet",
	Long: `Add a custom snippet. In EXPANSION the sequence \n stands for a newline.
Builtin triggers cannot be redefined and triggers must be alphanumeric.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		table, err := tusk.OpenSnippets(ctx, options()...)
		if err != nil {
			fatal("Failed to load snippets", err)
		}

		trigger := args[0]
		if err := table.Validate(trigger); err != nil {
			fatal("Cannot add snippet", err)
		}
		expansion := strings.ReplaceAll(args[1], `\n`, "\n")
		if !table.Insert(ctx, trigger, expansion, snippetDesc) {
			fatal("Cannot add snippet", fmt.Errorf("trigger %q rejected", trigger))
		}
		fmt.Printf("Added snippet %q\n", trigger)
	},
}

var snippetsRemoveCmd = &cobra.Command{
	Use:   "remove TRIGGER",
	Short: "Remove a custom snippet",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		table, err := tusk.OpenSnippets(ctx, options()...)
		if err != nil {
			fatal("Failed to load snippets", err)
		}
		if !table.Remove(ctx, args[0]) {
			fatal("Cannot remove snippet", fmt.Errorf("no custom snippet %q", args[0]))
		}
		fmt.Printf("Removed snippet %q\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(snippetsCmd)
	snippetsCmd.AddCommand(snippetsListCmd, snippetsAddCmd, snippetsRemoveCmd)
	snippetsListCmd.Flags().BoolVar(&snippetsJSON, "json", false, "Output in JSON format")
	snippetsListCmd.Flags().BoolVar(&snippetsCustom, "custom", false, "Only list custom snippets")
	snippetsAddCmd.Flags().StringVarP(&snippetDesc, "description", "d", "", "Snippet description")
}
