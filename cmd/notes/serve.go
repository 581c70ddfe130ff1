package main

import (
	"github.com/spf13/cobra"
)

var serveHTTP bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server (stdio by default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, closeApp, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp()

		if serveHTTP {
			return a.ServeHTTP(cmd.Context())
		}
		return a.Serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveHTTP, "http", false, "Serve HTTP on the configured address instead of the configured transport")
	rootCmd.AddCommand(serveCmd)
}
