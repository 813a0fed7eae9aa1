// Package cmd holds the pokeprice command line.
package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pokeprice/engine/internal/config"
	"github.com/pokeprice/engine/internal/logger"
)

var (
	version = "dev"
	commit  = "unknown"

	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "pokeprice",
	Short:         "price reconciliation and selection engine for trading cards",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) || cmd.Flags().Changed("config") {
				return err
			}
			loaded = config.Default()
		}
		cfg = loaded

		slog.SetDefault(slog.New(logger.NewHandler(cfg.Log.Level)))
		slog.Debug("Configuration loaded",
			slog.String("type", "sys"),
			slog.String("version", version),
			slog.String("commit", commit),
		)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", slog.String("type", "error"), slog.Any("error", err))
		os.Exit(1)
	}
}
