/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/smbtab/smbtab/pkg/builder"
	"github.com/smbtab/smbtab/pkg/probe"
	"github.com/smbtab/smbtab/pkg/store"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Assemble the inventory table into the configured store",
	Long: `Assemble every record kind from configuration and probed hardware
facts and register them with the configured table store.

Examples:
  smbtab build
  smbtab build --fixture   # canned hardware facts instead of live probing`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fixture, _ := cmd.Flags().GetBool("fixture")

		st, err := store.Locate(cfg, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		var pr probe.Probe = probe.NewHost(logger)
		if fixture {
			pr = probe.NewFixed()
		}

		if err := builder.New(st, pr, cfg, logger).Run(cmd.Context()); err != nil {
			return err
		}

		blob, err := st.Bytes()
		if err != nil {
			return err
		}
		cmd.Printf("Table built: %d bytes (%s store)\n", len(blob), cfg.Store.Backend)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().Bool("fixture", false, "Use canned hardware facts instead of probing the host")
}
