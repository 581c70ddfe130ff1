package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a note by id",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeApp, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp()

		id := args[0]
		removed, err := a.Notes.Delete(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !removed {
			fmt.Fprintf(cmd.ErrOrStderr(), "note %s not found\n", id)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
