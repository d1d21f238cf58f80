package incidents

import (
	"encoding/json"
	"fmt"

	"github.com/crucial707/tagwatch/cmd/cli/config"
	"github.com/crucial707/tagwatch/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// Init Incidents
// ==========================
func InitIncidents(rootCmd *cobra.Command) {

	incidentsCmd := &cobra.Command{
		Use:   "incidents",
		Short: "Open and resolve incidents",
	}

	incidentsCmd.AddCommand(
		createIncidentCmd(),
		resolveIncidentCmd(),
	)

	rootCmd.AddCommand(incidentsCmd)
}

// ==========================
// CREATE
// ==========================
func createIncidentCmd() *cobra.Command {

	var assetID, severity, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open an incident on an asset",
		RunE: func(cmd *cobra.Command, args []string) error {

			payload := map[string]string{
				"assetId":     assetID,
				"severity":    severity,
				"description": description,
			}

			var incident models.Incident
			if err := config.Do("POST", "/incidents", payload, &incident); err != nil {
				return err
			}

			b, _ := json.MarshalIndent(incident, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}

	cmd.Flags().StringVar(&assetID, "asset", "", "asset id (required)")
	cmd.Flags().StringVar(&severity, "severity", "medium", "severity: critical, high, medium, low or info")
	cmd.Flags().StringVar(&description, "description", "", "what was observed (required)")
	cmd.MarkFlagRequired("asset")
	cmd.MarkFlagRequired("description")

	return cmd
}

// ==========================
// RESOLVE
// ==========================
func resolveIncidentCmd() *cobra.Command {

	var reason string

	cmd := &cobra.Command{
		Use:   "resolve [assetID]",
		Short: "Resolve the most recent open incident for an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			payload := map[string]string{"reason": reason}

			var incident models.Incident
			if err := config.Do("POST", "/incidents/"+args[0]+"/resolve", payload, &incident); err != nil {
				return err
			}

			fmt.Printf("Resolved %s (asset %s) by %s: %s\n",
				incident.ID, incident.AssetID, incident.ResolvedBy, incident.ResolutionReason)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "resolution reason (required)")
	cmd.MarkFlagRequired("reason")

	return cmd
}
