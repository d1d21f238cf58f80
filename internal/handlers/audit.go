package handlers

import (
	"net/http"
	"strconv"

	"github.com/crucial707/tagwatch/internal/policy"
	"github.com/crucial707/tagwatch/internal/store"
)

// AuditHandler serves the audit trail.
type AuditHandler struct {
	Store *store.Store
}

// ListAudit returns audit entries newest first. Query: action, userId,
// resourceType, limit. An unparseable or non-positive limit is ignored
// rather than rejected.
func (h *AuditHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	if _, ok := allow(w, r, policy.ActionViewAudit); !ok {
		return
	}

	q := r.URL.Query()
	f := store.AuditFilter{
		Action:       q.Get("action"),
		UserID:       q.Get("userId"),
		ResourceType: q.Get("resourceType"),
	}
	if l := q.Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 {
			f.Limit = val
		}
	}

	writeJSON(w, http.StatusOK, h.Store.ListAuditLogs(f))
}
