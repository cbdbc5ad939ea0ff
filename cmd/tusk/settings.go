package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/tusk"
	"github.com/aretw0/tusk/pkg/core"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and change per-document settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show FILE",
	Short: "Print the settings of a document as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := tusk.OpenSettings(options()...)
		if err != nil {
			fatal("Failed to open settings", err)
		}
		key, err := filepath.Abs(args[0])
		if err != nil {
			fatal("Invalid path", err)
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(store.Load(context.Background(), key)); err != nil {
			fatal("Failed to encode JSON", err)
		}
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set FILE KEY VALUE",
	Short: "Change one setting of a document",
	Long:  `KEY is one of theme, input_width or show_preview.`,
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, err := tusk.OpenSettings(options()...)
		if err != nil {
			fatal("Failed to open settings", err)
		}
		key, err := filepath.Abs(args[0])
		if err != nil {
			fatal("Invalid path", err)
		}

		settings := store.Load(ctx, key)
		if err := setField(&settings, args[1], args[2]); err != nil {
			fatal("Invalid setting", err)
		}
		if err := store.Save(ctx, key, settings.Normalize()); err != nil {
			fatal("Failed to save settings", err)
		}
		fmt.Printf("Set %s for %s\n", args[1], key)
	},
}

func setField(s *core.Settings, name, value string) error {
	switch name {
	case "theme":
		s.Theme = value
	case "input_width":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("input_width: %w", err)
		}
		s.InputWidth = n
	case "show_preview":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("show_preview: %w", err)
		}
		s.ShowPreview = b
	default:
		return fmt.Errorf("unknown setting %q", name)
	}
	return nil
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the documents that have stored settings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := tusk.OpenSettings(options()...)
		if err != nil {
			fatal("Failed to open settings", err)
		}
		for _, key := range store.Keys(context.Background()) {
			fmt.Println(key)
		}
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently opened files, most recent first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := tusk.OpenSettings(options()...)
		if err != nil {
			fatal("Failed to open settings", err)
		}
		for _, path := range store.Recent(context.Background()) {
			fmt.Println(path)
		}
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd, recentCmd)
	settingsCmd.AddCommand(settingsListCmd, settingsShowCmd, settingsSetCmd)
}
