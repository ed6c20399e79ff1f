/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/smbtab/smbtab/pkg/api"
	"github.com/smbtab/smbtab/pkg/builder"
	"github.com/smbtab/smbtab/pkg/probe"
	"github.com/smbtab/smbtab/pkg/store"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the inventory table over HTTP",
	Long: `Serve the stored inventory table over HTTP: the raw blob, parsed
record views and Prometheus metrics.

Examples:
  smbtab serve --port=9280
  smbtab serve --rebuild --api-key=mysecretkey`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		apiKey, _ := cmd.Flags().GetString("api-key")
		rebuild, _ := cmd.Flags().GetBool("rebuild")
		fixture, _ := cmd.Flags().GetBool("fixture")

		st, err := store.Locate(cfg, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		if rebuild {
			var pr probe.Probe = probe.NewHost(logger)
			if fixture {
				pr = probe.NewFixed()
			}
			if err := builder.New(st, pr, cfg, logger).Run(cmd.Context()); err != nil {
				return err
			}
		}

		return api.StartServer(st, api.ServerConfig{Port: port, APIKey: apiKey}, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 9280, "Port to listen on")
	serveCmd.Flags().String("api-key", "", "API key protecting the table endpoints (empty disables auth)")
	serveCmd.Flags().Bool("rebuild", false, "Rebuild the table before serving")
	serveCmd.Flags().Bool("fixture", false, "Use canned hardware facts when rebuilding")
}
