/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smbtab/smbtab/pkg/config"
)

var (
	cfgFile string

	// Resolved by the root PersistentPreRunE for every subcommand.
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "smbtab",
	Short: "smbtab - hardware inventory table builder",
	Long: `smbtab assembles the platform's hardware inventory table from
configuration and probed hardware facts, stores it, and serves it for
inspection.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		cfg = config.DefaultConfig()
		path := cfgFile
		if path == "" {
			path = config.DefaultConfigPath()
		}
		if loaded, loadErr := config.LoadConfig(path); loadErr == nil {
			cfg = loaded
		} else if cfgFile != "" && cmd.Name() != "init" {
			// An explicitly named config must exist, except when init is
			// about to create it.
			return loadErr
		}

		logger, err = newLogger(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.config/smbtab/config.yaml)")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	return zapCfg.Build()
}
