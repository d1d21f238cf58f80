package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crucial707/tagwatch/internal/models"
)

func TestAuditHandler_ListAudit_RoleGate(t *testing.T) {
	st := newTestStore(t)
	h := &AuditHandler{Store: st}

	cases := []struct {
		role models.Role
		want int
	}{
		{models.RoleOperator, http.StatusForbidden},
		{models.RoleAuditor, http.StatusOK},
		{models.RoleAdmin, http.StatusOK},
	}
	for _, c := range cases {
		req := asRole(httptest.NewRequest("GET", "/audit", nil), c.role, "t")
		rr := httptest.NewRecorder()
		h.ListAudit(rr, req)
		if rr.Code != c.want {
			t.Errorf("role %s: got %d, want %d", c.role, rr.Code, c.want)
		}
	}
}

func TestAuditHandler_ListAudit_DefaultIdentityIsOperator(t *testing.T) {
	st := newTestStore(t)
	h := &AuditHandler{Store: st}

	// No identity in context: treated as operator, which cannot view audit.
	req := httptest.NewRequest("GET", "/audit", nil)
	rr := httptest.NewRecorder()
	h.ListAudit(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rr.Code)
	}
	var out map[string]string
	json.NewDecoder(rr.Body).Decode(&out)
	if out["error"] != "forbidden" {
		t.Errorf("unexpected error body: %v", out)
	}
}

func TestAuditHandler_ListAudit_FiltersAndLimit(t *testing.T) {
	st := newTestStore(t)
	h := &AuditHandler{Store: st}
	target := missingAsset(t, st)
	if _, err := st.ResolveIncident(target.ID, "admin-3", "audit filter test"); err != nil {
		t.Fatalf("ResolveIncident: %v", err)
	}

	req := asRole(httptest.NewRequest("GET", "/audit?userId=admin-3&action=incident.resolve&limit=1", nil),
		models.RoleAuditor, "aud-1")
	rr := httptest.NewRecorder()
	h.ListAudit(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var entries []models.AuditLogEntry
	if err := json.NewDecoder(rr.Body).Decode(&entries); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.UserID != "admin-3" || e.Action != models.AuditActionIncidentResolve {
		t.Errorf("filters leaked entry: %+v", e)
	}
	if e.Details["resolutionReason"] != "audit filter test" {
		t.Errorf("unexpected details: %v", e.Details)
	}
}

func TestAuditHandler_ListAudit_BadLimitIgnored(t *testing.T) {
	st := newTestStore(t)
	h := &AuditHandler{Store: st}

	req := asRole(httptest.NewRequest("GET", "/audit?limit=banana", nil), models.RoleAuditor, "aud-1")
	rr := httptest.NewRecorder()
	h.ListAudit(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200 (bad limit clamps, never errors)", rr.Code)
	}
}
