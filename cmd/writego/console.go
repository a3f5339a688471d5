package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/writego/internal/console"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start the interactive console",
	Long: `Console opens an interactive menu to log in and out, pick a collection, and
create, list or delete posts.

Creating posts opens $EDITOR on a temporary Markdown file, which is removed
once the post is published or discarded.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		cfg := console.Config{
			Service: svc,
			In:      cmd.InOrStdin(),
			Out:     cmd.OutOrStdout(),
			Logger:  slog.Default(),
		}
		if editor := console.EditorFromEnv(); editor != nil {
			cfg.Editor = editor
		}
		if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			cfg.Picker = console.FuzzyPicker{}
			cfg.Password = console.TerminalPassword(f)
		}

		err = console.New(cfg).Run(cmd.Context())
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
