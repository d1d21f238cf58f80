package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crucial707/tagwatch/internal/config"
	"github.com/crucial707/tagwatch/internal/models"
	"github.com/crucial707/tagwatch/internal/store"
	"github.com/golang-jwt/jwt/v5"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:       "test-secret-for-integration",
		Seed:            42,
		RateLimitPerMin: 6000,
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	cfg := testConfig()
	st := store.New(store.SystemClock{}, store.UUIDGenerator{}, cfg.Seed)
	srv := httptest.NewServer(newRouter(st, cfg))
	t.Cleanup(srv.Close)
	return srv, st
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, role, actor string, payload, out interface{}) int {
	t.Helper()
	var req *http.Request
	var err error
	if payload != nil {
		body, _ := json.Marshal(payload)
		req, err = http.NewRequest(method, srv.URL+path, bytes.NewReader(body))
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if role != "" {
		req.Header.Set("X-Role", role)
	}
	if actor != "" {
		req.Header.Set("X-Actor", actor)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

// TestAPI_ResolveFlow walks the full console scenario: filter the missing
// assets, resolve the first one's open incident as admin, and verify the
// asset flips to resolved with exactly one matching audit entry.
func TestAPI_ResolveFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	var missing []models.Asset
	if code := doJSON(t, srv, "GET", "/assets?status=missing", "", "", nil, &missing); code != http.StatusOK {
		t.Fatalf("list missing: status %d", code)
	}
	if len(missing) == 0 {
		t.Fatal("seed 42 produced no missing assets")
	}
	for _, a := range missing {
		if a.Status != models.StatusMissing {
			t.Errorf("status filter leaked asset %s (%s)", a.ID, a.Status)
		}
	}
	target := missing[0]

	var resolved models.Incident
	code := doJSON(t, srv, "POST", "/incidents/"+target.ID+"/resolve", "admin", "e2e-admin",
		map[string]string{"reason": "Test resolution"}, &resolved)
	if code != http.StatusOK {
		t.Fatalf("resolve: status %d", code)
	}
	if resolved.ResolvedBy != "e2e-admin" || resolved.ResolutionReason != "Test resolution" {
		t.Errorf("unexpected resolution: %+v", resolved)
	}

	var detail struct {
		Asset     models.Asset      `json:"asset"`
		Incidents []models.Incident `json:"incidents"`
	}
	if code := doJSON(t, srv, "GET", "/assets/"+target.ID, "", "", nil, &detail); code != http.StatusOK {
		t.Fatalf("detail: status %d", code)
	}
	if detail.Asset.Status != models.StatusResolved {
		t.Errorf("asset status: got %s, want resolved", detail.Asset.Status)
	}

	var trail []models.AuditLogEntry
	if code := doJSON(t, srv, "GET", "/audit?action=incident.resolve&userId=e2e-admin", "auditor", "aud-1", nil, &trail); code != http.StatusOK {
		t.Fatalf("audit: status %d", code)
	}
	if len(trail) != 1 {
		t.Fatalf("audit entries for e2e-admin: got %d, want exactly 1", len(trail))
	}
	e := trail[0]
	if e.ResourceID != resolved.ID || e.Details["resolutionReason"] != "Test resolution" || e.Details["assetId"] != target.ID {
		t.Errorf("unexpected audit entry: %+v", e)
	}

	// A second resolve finds nothing open and must not double-audit.
	var errBody map[string]string
	if code := doJSON(t, srv, "POST", "/incidents/"+target.ID+"/resolve", "admin", "e2e-admin",
		map[string]string{"reason": "Test resolution"}, &errBody); code != http.StatusNotFound {
		t.Fatalf("second resolve: status %d, want 404", code)
	}
	trail = nil
	doJSON(t, srv, "GET", "/audit?action=incident.resolve&userId=e2e-admin", "auditor", "aud-1", nil, &trail)
	if len(trail) != 1 {
		t.Errorf("second resolve appended an audit entry: %d", len(trail))
	}
}

func TestAPI_RoleGates(t *testing.T) {
	srv, st := newTestServer(t)
	target := st.ListAssets(store.AssetFilter{})[0]

	// Operator cannot view audit.
	var errBody map[string]string
	if code := doJSON(t, srv, "GET", "/audit", "operator", "op-1", nil, &errBody); code != http.StatusForbidden {
		t.Errorf("operator audit: status %d, want 403", code)
	}
	if errBody["error"] != "forbidden" {
		t.Errorf("unexpected error body: %v", errBody)
	}

	// Auditor and admin can.
	for _, role := range []string{"auditor", "admin"} {
		var trail []models.AuditLogEntry
		if code := doJSON(t, srv, "GET", "/audit", role, "t", nil, &trail); code != http.StatusOK {
			t.Errorf("%s audit: status %d, want 200", role, code)
		}
	}

	// Auditor cannot ingest scans; operator can.
	payload := map[string]string{"assetId": target.ID, "site": "yard", "readerId": "rdr-01"}
	if code := doJSON(t, srv, "POST", "/scans", "auditor", "aud-1", payload, &errBody); code != http.StatusForbidden {
		t.Errorf("auditor scan: status %d, want 403", code)
	}
	var scan models.Scan
	if code := doJSON(t, srv, "POST", "/scans", "operator", "op-1", payload, &scan); code != http.StatusCreated {
		t.Errorf("operator scan: status %d, want 201", code)
	}

	// An unrecognized role token degrades to operator: scans fine, audit denied.
	if code := doJSON(t, srv, "POST", "/scans", "warlord", "op-2", payload, &scan); code != http.StatusCreated {
		t.Errorf("unknown-role scan: status %d, want 201", code)
	}
	if code := doJSON(t, srv, "GET", "/audit", "warlord", "op-2", nil, &errBody); code != http.StatusForbidden {
		t.Errorf("unknown-role audit: status %d, want 403", code)
	}
}

func TestAPI_BearerIdentity(t *testing.T) {
	srv, _ := newTestServer(t)

	claims := jwt.MapClaims{
		"role": "auditor",
		"sub":  "jwt-auditor",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testConfig().JWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req, _ := http.NewRequest("GET", srv.URL+"/audit", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("audit request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("bearer auditor audit: status %d, want 200", resp.StatusCode)
	}
}

func TestAPI_ValidationErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	var errBody map[string]interface{}
	if code := doJSON(t, srv, "POST", "/scans", "operator", "op-1",
		map[string]string{"assetId": "AST-0001"}, &errBody); code != http.StatusBadRequest {
		t.Errorf("scan missing fields: status %d, want 400", code)
	}
	if code := doJSON(t, srv, "POST", "/scans", "operator", "op-1",
		map[string]string{"assetId": "AST-9999", "site": "yard", "readerId": "rdr-01"}, &errBody); code != http.StatusNotFound {
		t.Errorf("scan unknown asset: status %d, want 404", code)
	}
}

// TestAPI_Health is a quick smoke test for the health endpoint.
func TestAPI_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /health status: got %d, want 200", resp.StatusCode)
	}
}
