package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rpggio/voicenotes/internal/app"
	"github.com/rpggio/voicenotes/internal/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "Quick text and voice notes",
	Long: `notes keeps a list of short notes, newest first, in a local SQLite file.
Notes can be typed, dictated through an external speech-to-text command,
or managed by MCP clients with "notes serve".`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $VOICENOTES_CONFIG_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// openApp loads the configuration and opens the notes app. Logs go to the
// command's stderr unless a log file is configured.
func openApp(cmd *cobra.Command, opts ...app.Option) (*app.App, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("config error: %w", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	logger, logCloser, err := app.NewLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, fmt.Errorf("log file error: %w", err)
	}

	a, err := app.Open(cmd.Context(), cfg, logger, opts...)
	if err != nil {
		_ = logCloser.Close()
		return nil, nil, err
	}
	return a, func() {
		_ = a.Close()
		_ = logCloser.Close()
	}, nil
}
