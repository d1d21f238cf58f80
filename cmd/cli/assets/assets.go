package assets

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/crucial707/tagwatch/cmd/cli/config"
	"github.com/crucial707/tagwatch/cmd/cli/output"
	"github.com/crucial707/tagwatch/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// Init Assets
// ==========================
func InitAssets(rootCmd *cobra.Command) {

	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Browse tracked assets",
	}

	assetsCmd.AddCommand(
		listAssetsCmd(),
		getAssetCmd(),
	)

	rootCmd.AddCommand(assetsCmd)
}

// ==========================
// LIST
// ==========================
func listAssetsCmd() *cobra.Command {

	var site, status, severity, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {

			q := url.Values{}
			if site != "" {
				q.Set("site", site)
			}
			if status != "" {
				q.Set("status", status)
			}
			if severity != "" {
				q.Set("severity", severity)
			}
			if search != "" {
				q.Set("search", search)
			}
			path := "/assets"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			var assets []models.Asset
			if err := config.Do("GET", path, nil, &assets); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(assets))
			for _, a := range assets {
				rows = append(rows, []interface{}{
					a.ID, a.TagID, a.Name, a.Site, a.Status, a.Severity,
					a.LastSeenAt.Format("2006-01-02 15:04"),
				})
			}
			output.RenderTable(
				[]string{"ID", "TAG", "NAME", "SITE", "STATUS", "SEVERITY", "LAST SEEN"},
				rows,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&site, "site", "", "filter by site")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (active, missing, anomaly, resolved)")
	cmd.Flags().StringVar(&severity, "severity", "", "filter by severity")
	cmd.Flags().StringVar(&search, "search", "", "substring search over name and tag id")

	return cmd
}

// ==========================
// GET
// ==========================
func getAssetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show an asset with its scan and incident history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			var detail struct {
				Asset     models.Asset      `json:"asset"`
				Scans     []models.Scan     `json:"scans"`
				Incidents []models.Incident `json:"incidents"`
			}
			if err := config.Do("GET", "/assets/"+args[0], nil, &detail); err != nil {
				return err
			}

			b, _ := json.MarshalIndent(detail, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}
}
