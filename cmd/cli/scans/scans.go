package scans

import (
	"encoding/json"
	"fmt"

	"github.com/crucial707/tagwatch/cmd/cli/config"
	"github.com/crucial707/tagwatch/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// Init Scans
// ==========================
func InitScans(rootCmd *cobra.Command) {

	scansCmd := &cobra.Command{
		Use:   "scans",
		Short: "Ingest detection events",
	}

	scansCmd.AddCommand(createScanCmd())

	rootCmd.AddCommand(scansCmd)
}

// ==========================
// CREATE
// ==========================
func createScanCmd() *cobra.Command {

	var assetID, site, readerID string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a scan of an asset",
		RunE: func(cmd *cobra.Command, args []string) error {

			payload := map[string]string{
				"assetId":  assetID,
				"site":     site,
				"readerId": readerID,
			}

			var scan models.Scan
			if err := config.Do("POST", "/scans", payload, &scan); err != nil {
				return err
			}

			b, _ := json.MarshalIndent(scan, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}

	cmd.Flags().StringVar(&assetID, "asset", "", "asset id (required)")
	cmd.Flags().StringVar(&site, "site", "", "site where the asset was read (required)")
	cmd.Flags().StringVar(&readerID, "reader", "", "reader id (required)")
	cmd.MarkFlagRequired("asset")
	cmd.MarkFlagRequired("site")
	cmd.MarkFlagRequired("reader")

	return cmd
}
