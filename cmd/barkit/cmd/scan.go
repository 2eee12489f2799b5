package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/barkit/internal/scan"
)

// scanCmd represents the scan command.
var scanCmd = &cobra.Command{
	Use:   "scan <image files...>",
	Short: "Decode barcodes and QR codes from image files",
	Long: `Decode all barcode and QR code symbols found in one or more image files.
PNG, JPEG, GIF, BMP and WebP inputs are supported.

Examples:
  barkit scan photo.png
  barkit scan --json *.jpg
  barkit scan --try-harder=false fast.png`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		tryHarder := cfg.Scan.TryHarder
		if cmd.Flags().Changed("try-harder") {
			tryHarder, _ = cmd.Flags().GetBool("try-harder")
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		decoder := scan.New()
		opts := scan.Options{TryHarder: tryHarder}

		type fileReport struct {
			File    string       `json:"file"`
			Count   int          `json:"count"`
			Results []scan.Result `json:"results"`
			Error   string       `json:"error,omitempty"`
		}

		reports := make([]fileReport, 0, len(args))
		var failed bool
		for _, path := range args {
			fr := fileReport{File: path, Results: []scan.Result{}}

			data, err := os.ReadFile(path)
			if err != nil {
				fr.Error = err.Error()
				failed = true
				reports = append(reports, fr)
				continue
			}

			report, err := decoder.ScanBytes(data, opts)
			if err != nil {
				fr.Error = err.Error()
				failed = true
				reports = append(reports, fr)
				continue
			}
			fr.Count = report.Count
			fr.Results = report.Results
			reports = append(reports, fr)
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(reports); err != nil {
				return err
			}
		} else {
			for _, fr := range reports {
				if fr.Error != "" {
					fmt.Fprintf(out, "%s: error: %s\n", fr.File, fr.Error)
					continue
				}
				fmt.Fprintf(out, "%s: %d symbol(s)\n", fr.File, fr.Count)
				for _, r := range fr.Results {
					fmt.Fprintf(out, "  [%s] %s\n", r.Type, r.Data)
				}
			}
		}

		if failed {
			return errors.New("one or more files could not be scanned")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().Bool("json", false, "emit results as JSON")
	scanCmd.Flags().Bool("try-harder", true, "spend more time searching for symbols")
}
