package audit

import (
	"net/url"
	"strconv"

	"github.com/crucial707/tagwatch/cmd/cli/config"
	"github.com/crucial707/tagwatch/cmd/cli/output"
	"github.com/crucial707/tagwatch/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// Init Audit
// ==========================
func InitAudit(rootCmd *cobra.Command) {

	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Review the audit trail",
	}

	auditCmd.AddCommand(listAuditCmd())

	rootCmd.AddCommand(auditCmd)
}

// ==========================
// LIST
// ==========================
func listAuditCmd() *cobra.Command {

	var action, userID, resourceType string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List audit entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {

			q := url.Values{}
			if action != "" {
				q.Set("action", action)
			}
			if userID != "" {
				q.Set("userId", userID)
			}
			if resourceType != "" {
				q.Set("resourceType", resourceType)
			}
			if limit > 0 {
				q.Set("limit", strconv.Itoa(limit))
			}
			path := "/audit"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			var entries []models.AuditLogEntry
			if err := config.Do("GET", path, nil, &entries); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []interface{}{
					e.Timestamp.Format("2006-01-02 15:04:05"),
					e.UserID, e.Action, e.ResourceType, e.ResourceID,
				})
			}
			output.RenderTable(
				[]string{"TIME", "USER", "ACTION", "RESOURCE", "ID"},
				rows,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&action, "action", "", "filter by action")
	cmd.Flags().StringVar(&userID, "user", "", "filter by user id")
	cmd.Flags().StringVar(&resourceType, "resource-type", "", "filter by resource type")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of entries")

	return cmd
}
