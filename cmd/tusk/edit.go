package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/tusk"
	"github.com/aretw0/tusk/pkg/core"
)

var (
	editNew    bool
	editKeys   string
	editSaveAs string
	editQuiet  bool
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Replay a key script against a document",
	Long: `Open a document (or a new draft when no file is given), feed it the
keystrokes of a script and autosave the result.

The script is read from --keys or, when absent, from stdin. Plain characters
are typed, a newline is Enter and a tab is Tab. Named keys are written in
angle brackets: <enter>, <tab>, <bs>, <lt> for a literal '<', and the editor
commands <dup>, <up>, <down>, <del>, <undo>, <redo>, <indent>, <save>.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var path string
		if len(args) == 1 {
			path = args[0]
		}
		if err := checkTarget(path, editNew); err != nil {
			fatal("Cannot open document", err)
		}

		script := editKeys
		if !cmd.Flags().Changed("keys") {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				fatal("Failed to read key script", err)
			}
			script = string(data)
		}
		steps, err := parseScript(script)
		if err != nil {
			fatal("Invalid key script", err)
		}

		ctx := context.Background()
		s, err := tusk.Open(ctx, path, options()...)
		if err != nil {
			fatal("Failed to open document", err)
		}

		play(ctx, s, steps)

		if editSaveAs != "" {
			if res := s.SaveAs(ctx, editSaveAs); !res.Success {
				fatal("Save as failed", errors.New(res.Error))
			}
		}
		if err := s.Close(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}

		if !editQuiet {
			fmt.Fprint(cmd.OutOrStdout(), s.Text())
			fmt.Fprintln(cmd.OutOrStdout())
		}
		fmt.Fprintln(cmd.ErrOrStderr(), s.Status())
		if s.Document().LastSave.State() == "error" {
			os.Exit(1)
		}
	},
}

// checkTarget enforces the --new contract: a new document needs a name
// that is not taken, an existing one must be present.
func checkTarget(path string, isNew bool) error {
	if path == "" {
		if isNew {
			return errors.New("--new requires a file name")
		}
		return nil
	}

	_, err := os.Stat(path)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	switch {
	case isNew && exists:
		return fmt.Errorf("%s: %w", path, core.ErrFileExists)
	case !isNew && !exists:
		return fmt.Errorf("%s: %w (use --new to create it)", path, core.ErrFileMissing)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().BoolVar(&editNew, "new", false, "Create the file; fails if it already exists")
	editCmd.Flags().StringVarP(&editKeys, "keys", "k", "", "Key script to replay (default: read stdin)")
	editCmd.Flags().StringVar(&editSaveAs, "save-as", "", "Save the result under a new path")
	editCmd.Flags().BoolVarP(&editQuiet, "quiet", "q", false, "Do not print the resulting text")
}
