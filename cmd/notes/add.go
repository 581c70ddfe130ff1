package main

import (
	"fmt"
	"strings"

	"github.com/rpggio/voicenotes/internal/domain/editor"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Create a note from the given text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeApp, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp()

		notifier := terminalNotifier{out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}
		ed := editor.New(a.Notes, nil, notifier, a.Logger)
		ed.ContentChanged(strings.Join(args, " "))

		created, err := ed.Save(cmd.Context())
		if err != nil {
			return err
		}
		if created == nil {
			return fmt.Errorf("nothing to save")
		}
		fmt.Fprintln(cmd.OutOrStdout(), created.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
