/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/hex"
	"os"

	"github.com/spf13/cobra"

	"github.com/smbtab/smbtab/pkg/codec"
	"github.com/smbtab/smbtab/pkg/store"
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the stored inventory table",
	Long: `Print the stored table record by record, or write the raw
flattened blob to stdout with --raw.

Examples:
  smbtab dump
  smbtab dump --raw > table.bin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")

		st, err := store.Locate(cfg, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		blob, err := st.Bytes()
		if err != nil {
			return err
		}

		if raw {
			_, err = os.Stdout.Write(blob)
			return err
		}

		records, err := codec.ParseTable(blob)
		if err != nil {
			return err
		}

		for _, rec := range records {
			cmd.Printf("type %-3d handle 0x%04X length %-3d %s\n",
				rec.Type, uint16(rec.Handle), len(rec.Formatted), hex.EncodeToString(rec.Formatted))
			for i, s := range rec.Strings {
				cmd.Printf("    [%d] %s\n", i+1, s)
			}
		}
		cmd.Printf("%d records, %d bytes\n", len(records), len(blob))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().Bool("raw", false, "Write the raw flattened blob to stdout")
}
