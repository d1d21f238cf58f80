package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crucial707/tagwatch/internal/models"
)

func TestAssetHandler_ListAssets(t *testing.T) {
	st := newTestStore(t)
	h := &AssetHandler{Store: st}

	req := httptest.NewRequest("GET", "/assets", nil)
	rr := httptest.NewRecorder()
	h.ListAssets(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("ListAssets status: got %d, want 200", rr.Code)
	}
	var list []models.Asset
	if err := json.NewDecoder(rr.Body).Decode(&list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list) == 0 {
		t.Error("expected seeded assets")
	}
}

func TestAssetHandler_ListAssets_StatusFilter(t *testing.T) {
	st := newTestStore(t)
	h := &AssetHandler{Store: st}

	req := httptest.NewRequest("GET", "/assets?status=missing", nil)
	rr := httptest.NewRecorder()
	h.ListAssets(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var list []models.Asset
	if err := json.NewDecoder(rr.Body).Decode(&list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list) == 0 {
		t.Fatal("expected missing assets in the seed")
	}
	for _, a := range list {
		if a.Status != models.StatusMissing {
			t.Errorf("filter leaked asset with status %s", a.Status)
		}
	}
}

func TestAssetHandler_ListAssets_NoMatchIsEmptyArray(t *testing.T) {
	st := newTestStore(t)
	h := &AssetHandler{Store: st}

	req := httptest.NewRequest("GET", "/assets?site=nowhere", nil)
	rr := httptest.NewRecorder()
	h.ListAssets(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if body := rr.Body.String(); body != "[]\n" {
		t.Errorf("want empty JSON array, got %q", body)
	}
}

func TestAssetHandler_GetAsset_Detail(t *testing.T) {
	st := newTestStore(t)
	h := &AssetHandler{Store: st}
	target := missingAsset(t, st)

	req := requestWithChiURLParams("GET", "/assets/"+target.ID, nil, map[string]string{"id": target.ID})
	rr := httptest.NewRecorder()
	h.GetAsset(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("GetAsset status: got %d, want 200", rr.Code)
	}
	var detail AssetDetail
	if err := json.NewDecoder(rr.Body).Decode(&detail); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if detail.Asset.ID != target.ID {
		t.Errorf("unexpected asset: %+v", detail.Asset)
	}
	if len(detail.Scans) == 0 {
		t.Error("detail has no scans")
	}
	if len(detail.Incidents) == 0 {
		t.Error("missing asset should have an incident in its detail")
	}
	for _, sc := range detail.Scans {
		if sc.AssetID != target.ID {
			t.Errorf("scan for wrong asset: %+v", sc)
		}
	}
}

func TestAssetHandler_GetAsset_NotFound(t *testing.T) {
	st := newTestStore(t)
	h := &AssetHandler{Store: st}

	req := requestWithChiURLParams("GET", "/assets/AST-9999", nil, map[string]string{"id": "AST-9999"})
	rr := httptest.NewRecorder()
	h.GetAsset(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("GetAsset status: got %d, want 404", rr.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["error"] != "asset not found" {
		t.Errorf("unexpected error body: %v", out)
	}
}

func TestAssetHandler_ListAssets_AllRolesAllowed(t *testing.T) {
	st := newTestStore(t)
	h := &AssetHandler{Store: st}

	for _, role := range []models.Role{models.RoleOperator, models.RoleAdmin, models.RoleAuditor} {
		req := asRole(httptest.NewRequest("GET", "/assets?status=missing&search=rfid", nil), role, "t")
		rr := httptest.NewRecorder()
		h.ListAssets(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("role %s: got %d, want 200", role, rr.Code)
		}
	}
}
