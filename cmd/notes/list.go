package main

import (
	"encoding/json"
	"time"

	"github.com/rpggio/voicenotes/internal/present"
	"github.com/spf13/cobra"
)

var (
	listJSON  bool
	listQuery string
	listWidth int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, closeApp, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp()

		cards := present.Cards(a.Notes.Search(listQuery), time.Now(), listWidth)
		if listJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cards)
		}
		return present.WriteCards(cmd.OutOrStdout(), cards)
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Only notes containing this text (case-insensitive)")
	listCmd.Flags().IntVar(&listWidth, "width", present.DefaultPreviewRunes, "Preview length in characters (0 for full text)")
	rootCmd.AddCommand(listCmd)
}
