package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/tusk"
)

type environmentStatus struct {
	Version string       `json:"version"`
	Paths   tusk.Paths   `json:"paths"`
	Drafts  int          `json:"drafts"`
	Recent  []string     `json:"recent"`
	Session *sessionInfo `json:"session,omitempty"`
}

type sessionInfo struct {
	Component string `json:"component"`
	State     any    `json:"state"`
}

var statusCmd = &cobra.Command{
	Use:   "status [file]",
	Short: "Print resolved paths and, for a file, its session state as JSON",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		opts := options()

		env, err := tusk.Resolve(opts...)
		if err != nil {
			fatal("Failed to resolve configuration", err)
		}
		drafts, err := tusk.ListDrafts(opts...)
		if err != nil {
			fatal("Failed to list drafts", err)
		}
		store, err := tusk.OpenSettings(opts...)
		if err != nil {
			fatal("Failed to open settings", err)
		}

		status := environmentStatus{
			Version: strings.TrimSpace(tusk.Version),
			Paths:   env.Paths,
			Drafts:  len(drafts),
			Recent:  store.Recent(ctx),
		}

		if len(args) == 1 {
			if err := checkTarget(args[0], false); err != nil {
				fatal("Cannot inspect document", err)
			}
			s, err := tusk.Open(ctx, args[0], append(opts, tusk.WithoutRecent())...)
			if err != nil {
				fatal("Failed to open document", err)
			}
			var in introspection.Introspectable = s
			status.Session = &sessionInfo{State: in.State()}
			if comp, ok := in.(introspection.Component); ok {
				status.Session.Component = comp.ComponentType()
			}
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(status); err != nil {
			fatal("Failed to encode JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
