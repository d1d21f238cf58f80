package policy

import "github.com/crucial707/tagwatch/internal/models"

// Action is a console operation subject to authorization.
type Action string

const (
	ActionViewAssets      Action = "view_assets"
	ActionViewAssetDetail Action = "view_asset_detail"
	ActionFilterAssets    Action = "filter_assets"
	ActionSearchAssets    Action = "search_assets"
	ActionCreateScan      Action = "create_scan"
	ActionResolveIncident Action = "resolve_incident"
	ActionViewAudit       Action = "view_audit"
)

// Authorize reports whether role may perform action. Admin may perform
// every action. Unrecognized roles are widened to operator by ParseRole
// before they reach here, so the operator rows double as the default-deny
// baseline for bad role tokens.
func Authorize(role models.Role, action Action) bool {
	if role == models.RoleAdmin {
		return true
	}
	switch action {
	case ActionViewAssets, ActionViewAssetDetail, ActionFilterAssets, ActionSearchAssets:
		return true
	case ActionCreateScan:
		return role == models.RoleOperator
	case ActionViewAudit:
		return role == models.RoleAuditor
	case ActionResolveIncident:
		return false
	default:
		return false
	}
}
