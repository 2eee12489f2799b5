package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/barkit/internal/registry"
)

// formatsCmd represents the formats command.
var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported barcode formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := registry.New()
		out := cmd.OutOrStdout()
		for _, entry := range reg.Entries() {
			fmt.Fprintf(out, "%-10s %s\n", entry.ID, entry.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
